// Pinterest API v5 implementation of the source provider
//
// Response types based on https://developers.pinterest.com/docs/api/v5/
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
	"golang.org/x/oauth2"
)

const (
	pinterestAuthURL  = "https://www.pinterest.com/oauth/"
	pinterestTokenURL = "https://api.pinterest.com/v5/oauth/token"
	pinterestBaseURL  = "https://api.pinterest.com/v5"

	pinterestMaxPageSize = 250
)

var pinterestScopes = []string{"boards:read", "pins:read", "boards:read_secret", "pins:read_secret"}

// PinterestBoard is a board as returned by GET /boards.
type PinterestBoard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Privacy     string `json:"privacy"`
}

// PinterestImage is one rendition in a pin's media.images map.
type PinterestImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type pinterestMedia struct {
	MediaType string                    `json:"media_type"`
	Images    map[string]PinterestImage `json:"images"`
}

// PinterestPin is a pin as returned by GET /boards/{id}/pins.
type PinterestPin struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Media       *pinterestMedia `json:"media"`
}

type pinterestPage[T any] struct {
	Items    []T     `json:"items"`
	Bookmark *string `json:"bookmark"`
}

// Pinterest is the source provider: OAuth adapter, board listing and pin listing.
type Pinterest struct {
	*OAuthAdapter
	api      *Client
	pageSize int
}

var (
	_ AuthAdapter   = (*Pinterest)(nil)
	_ BoardProvider = (*Pinterest)(nil)
	_ ItemSource    = (*Pinterest)(nil)
)

// NewPinterest creates the Pinterest provider from its client registration.
//
// Client credentials are sent to the token endpoint as an HTTP Basic header.
func NewPinterest(creds shared.OAuthClientConfig, limits shared.LimitsConfig, opts ...Option) (*Pinterest, error) {
	o := buildOptions(pinterestBaseURL, oauth2.Endpoint{
		AuthURL:   pinterestAuthURL,
		TokenURL:  pinterestTokenURL,
		AuthStyle: oauth2.AuthStyleInHeader,
	}, opts)

	adapter, err := newOAuthAdapter(ProviderPinterest, models.SourceSlot, creds, *o.endpoint, pinterestScopes, o.httpClient)
	if err != nil {
		return nil, err
	}

	return &Pinterest{
		OAuthAdapter: adapter,
		api:          NewClient(ProviderPinterest, o.baseURL, o.httpClient, limits, o.logger),
		pageSize:     clampPageSize(limits.PageSize, pinterestMaxPageSize),
	}, nil
}

func clampPageSize(n, limit int) int {
	if n <= 0 || n > limit {
		return limit
	}
	return n
}

// Profile returns the Pinterest username that owns token.
func (p *Pinterest) Profile(ctx context.Context, token string) (string, error) {
	var account struct {
		Username string `json:"username"`
	}
	if err := p.api.Do(ctx, http.MethodGet, "/user_account", token, nil, &account); err != nil {
		return "", err
	}
	return account.Username, nil
}

// ListBoards returns every board of the user, following bookmarks.
func (p *Pinterest) ListBoards(ctx context.Context, token string) ([]models.Board, error) {
	var boards []models.Board
	err := paginateBookmark(ctx, p.api, token, "/boards", p.pageSize, func(b PinterestBoard) {
		boards = append(boards, models.Board{ID: b.ID, Name: b.Name, Description: b.Description})
	})
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// ListItems returns every pin on boardID in provider order.
func (p *Pinterest) ListItems(ctx context.Context, token, boardID string) ([]models.SourceItem, error) {
	if boardID == "" {
		return nil, fmt.Errorf("%w: source board id", shared.ErrMissingArgument)
	}

	var items []models.SourceItem
	path := "/boards/" + url.PathEscape(boardID) + "/pins"
	err := paginateBookmark(ctx, p.api, token, path, p.pageSize, func(pin PinterestPin) {
		items = append(items, pin.toSourceItem())
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (pin PinterestPin) toSourceItem() models.SourceItem {
	item := models.SourceItem{ExternalID: pin.ID, Title: pin.Title}
	if pin.Media == nil {
		return item
	}

	variants := make([]string, 0, len(pin.Media.Images))
	for variant, img := range pin.Media.Images {
		if img.URL != "" {
			variants = append(variants, variant)
		}
	}
	sort.Strings(variants)

	for _, variant := range variants {
		item.Images = append(item.Images, models.ImageCandidate{Variant: variant, URL: pin.Media.Images[variant].URL})
	}
	return item
}

func paginateBookmark[T any](ctx context.Context, c *Client, token, path string, pageSize int, fn func(T)) error {
	bookmark := ""
	for {
		q := url.Values{}
		q.Set("page_size", fmt.Sprint(pageSize))
		if bookmark != "" {
			q.Set("bookmark", bookmark)
		}

		var page pinterestPage[T]
		if err := c.Do(ctx, http.MethodGet, path+"?"+q.Encode(), token, nil, &page); err != nil {
			return err
		}

		for _, item := range page.Items {
			fn(item)
		}

		if page.Bookmark == nil || *page.Bookmark == "" || *page.Bookmark == bookmark {
			return nil
		}
		bookmark = *page.Bookmark
	}
}
