package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/boardsync/internal/models"
)

type fakeBoards struct {
	name   string
	boards []models.Board
	err    error

	mu     sync.Mutex
	calls  int
	tokens []string
}

func (f *fakeBoards) Name() string { return f.name }

func (f *fakeBoards) ListBoards(ctx context.Context, token string) ([]models.Board, error) {
	f.mu.Lock()
	f.calls++
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return f.boards, nil
}

func (f *fakeBoards) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSource struct {
	items []models.SourceItem
	err   error
	calls int
}

func (f *fakeSource) Name() string { return "pinterest" }

func (f *fakeSource) ListItems(ctx context.Context, token, boardID string) ([]models.SourceItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type createCall struct {
	token, boardID, url, title string
}

// fakeSink accepts every write unless the image URL is listed in fail.
type fakeSink struct {
	fail  map[string]error
	calls []createCall
}

func (f *fakeSink) Name() string { return "miro" }

func (f *fakeSink) CreateImage(ctx context.Context, token, boardID, imageURL, title string) (string, error) {
	f.calls = append(f.calls, createCall{token: token, boardID: boardID, url: imageURL, title: title})
	if err, ok := f.fail[imageURL]; ok {
		return "", err
	}
	return fmt.Sprintf("created-%d", len(f.calls)), nil
}

func item(id string, variants ...string) models.SourceItem {
	it := models.SourceItem{ExternalID: id, Title: "pin " + id}
	for _, v := range variants {
		it.Images = append(it.Images, models.ImageCandidate{Variant: v, URL: fmt.Sprintf("https://img/%s/%s.jpg", id, v)})
	}
	return it
}
