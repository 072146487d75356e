package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// PublishedPages lists published CMS pages.
func (c *Client) PublishedPages(ctx context.Context) ([]CMSContent, error) {
	return c.listContent(ctx, "cms_pages", "/cms/pages")
}

// GalleryImages lists published gallery entries.
func (c *Client) GalleryImages(ctx context.Context) ([]CMSContent, error) {
	return c.listContent(ctx, "cms_gallery", "/cms/gallery")
}

// HeroBanners lists published hero banners.
func (c *Client) HeroBanners(ctx context.Context) ([]CMSContent, error) {
	return c.listContent(ctx, "cms_banners", "/cms/banners")
}

// Announcements lists published announcements.
func (c *Client) Announcements(ctx context.Context) ([]CMSContent, error) {
	return c.listContent(ctx, "cms_announcements", "/cms/announcements")
}

// ContactInfo fetches the published contact block.
func (c *Client) ContactInfo(ctx context.Context) (*CMSContent, error) {
	var content CMSContent
	if err := c.do(ctx, "cms_contact", http.MethodGet, "/cms/contact", nil, nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// ContentBySlug fetches one item by its slug.
func (c *Client) ContentBySlug(ctx context.Context, slug string) (*CMSContent, error) {
	var content CMSContent
	path := "/cms/slug/" + url.PathEscape(slug)
	if err := c.do(ctx, "cms_by_slug", http.MethodGet, path, nil, nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// SearchContent runs the upstream CMS text search.
func (c *Client) SearchContent(ctx context.Context, search string) ([]CMSContent, error) {
	query := url.Values{}
	query.Set("q", search)

	var items []CMSContent
	if err := c.do(ctx, "cms_search", http.MethodGet, "/cms/search", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateContent adds a CMS item.
func (c *Client) CreateContent(ctx context.Context, input CMSContentInput) (*CMSContent, error) {
	var content CMSContent
	if err := c.do(ctx, "cms_create", http.MethodPost, "/cms/", nil, input, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// UpdateContent applies a partial update to a CMS item.
func (c *Client) UpdateContent(ctx context.Context, id int64, input CMSContentInput) (*CMSContent, error) {
	var content CMSContent
	path := fmt.Sprintf("/cms/%d", id)
	if err := c.do(ctx, "cms_update", http.MethodPut, path, nil, input, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// DeleteContent removes a CMS item.
func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/cms/%d", id)
	return c.do(ctx, "cms_delete", http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) listContent(ctx context.Context, operation, path string) ([]CMSContent, error) {
	var items []CMSContent
	if err := c.do(ctx, operation, http.MethodGet, path, nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
