// Miro REST API v2 implementation of the destination provider
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
	"golang.org/x/oauth2"
)

const (
	miroAuthURL  = "https://miro.com/oauth/authorize"
	miroTokenURL = "https://api.miro.com/v1/oauth/token"
	miroBaseURL  = "https://api.miro.com"

	miroMaxPageSize = 50
)

var miroScopes = []string{"boards:read", "boards:write"}

// MiroBoard is a board as returned by GET /v2/boards.
type MiroBoard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type miroBoardPage struct {
	Data   []MiroBoard `json:"data"`
	Total  int         `json:"total"`
	Offset int         `json:"offset"`
	Size   int         `json:"size"`
}

type miroImageData struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// MiroImageRequest is the body of POST /v2/boards/{id}/images.
type MiroImageRequest struct {
	Data miroImageData `json:"data"`
}

// Miro is the destination provider: OAuth adapter, board listing and image creation.
type Miro struct {
	*OAuthAdapter
	api      *Client
	pageSize int
}

var (
	_ AuthAdapter   = (*Miro)(nil)
	_ BoardProvider = (*Miro)(nil)
	_ ItemSink      = (*Miro)(nil)
)

// NewMiro creates the Miro provider from its client registration.
//
// Client credentials are sent to the token endpoint as form parameters.
func NewMiro(creds shared.OAuthClientConfig, limits shared.LimitsConfig, opts ...Option) (*Miro, error) {
	o := buildOptions(miroBaseURL, oauth2.Endpoint{
		AuthURL:   miroAuthURL,
		TokenURL:  miroTokenURL,
		AuthStyle: oauth2.AuthStyleInParams,
	}, opts)

	adapter, err := newOAuthAdapter(ProviderMiro, models.DestinationSlot, creds, *o.endpoint, miroScopes, o.httpClient)
	if err != nil {
		return nil, err
	}

	return &Miro{
		OAuthAdapter: adapter,
		api:          NewClient(ProviderMiro, o.baseURL, o.httpClient, limits, o.logger),
		pageSize:     clampPageSize(limits.PageSize, miroMaxPageSize),
	}, nil
}

// Profile returns the Miro user name that owns token.
func (m *Miro) Profile(ctx context.Context, token string) (string, error) {
	var info struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := m.api.Do(ctx, http.MethodGet, "/v1/oauth-token", token, nil, &info); err != nil {
		return "", err
	}
	return info.User.Name, nil
}

// ListBoards returns every board the user can access, following offsets.
func (m *Miro) ListBoards(ctx context.Context, token string) ([]models.Board, error) {
	var boards []models.Board
	offset := 0
	for {
		q := url.Values{}
		q.Set("limit", fmt.Sprint(m.pageSize))
		q.Set("offset", fmt.Sprint(offset))

		var page miroBoardPage
		if err := m.api.Do(ctx, http.MethodGet, "/v2/boards?"+q.Encode(), token, nil, &page); err != nil {
			return nil, err
		}

		for _, b := range page.Data {
			boards = append(boards, models.Board{ID: b.ID, Name: b.Name, Description: b.Description})
		}

		offset += len(page.Data)
		if len(page.Data) == 0 || offset >= page.Total {
			return boards, nil
		}
	}
}

// CreateImage adds an image item referencing imageURL to boardID.
func (m *Miro) CreateImage(ctx context.Context, token, boardID, imageURL, title string) (string, error) {
	if boardID == "" {
		return "", fmt.Errorf("%w: destination board id", shared.ErrMissingArgument)
	}
	if imageURL == "" {
		return "", fmt.Errorf("%w: image url", shared.ErrMissingArgument)
	}

	body := MiroImageRequest{Data: miroImageData{URL: imageURL, Title: title}}
	var created struct {
		ID string `json:"id"`
	}

	path := "/v2/boards/" + url.PathEscape(boardID) + "/images"
	if err := m.api.Do(ctx, http.MethodPost, path, token, body, &created); err != nil {
		return "", err
	}

	if created.ID == "" {
		return "", &ProviderError{Provider: ProviderMiro, StatusCode: http.StatusCreated, Message: "response carried no item id", Err: shared.ErrMalformedResponse}
	}
	return created.ID, nil
}
