package digipost

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Endpoint helpers return the raw XML of the response. Mapping it onto
// business types is left to the caller.

const (
	defaultPageSize = 100

	// DefaultArchiveName is the name of the archive every sender has.
	DefaultArchiveName = "default"
)

// EventsQuery selects a page of document events.
type EventsQuery struct {
	From       time.Time
	To         time.Time
	Offset     int
	MaxResults int
}

// SenderInformation returns information about the signing sender.
func (c *Client) SenderInformation(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, "/sender", nil)
}

// SendMessage posts a message envelope and its document contents.
func (c *Client) SendMessage(ctx context.Context, parts []Part) ([]byte, error) {
	return c.PostMultipart(ctx, "/messages", parts)
}

// Identify posts an identification request.
func (c *Client) Identify(ctx context.Context, body []byte) ([]byte, error) {
	return c.Post(ctx, "/identification", body)
}

// Search looks up recipients matching query.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	return c.Get(ctx, "/recipients/search/"+url.PathEscape(query), nil)
}

// SearchSuggest returns autocomplete suggestions for a recipient search.
func (c *Client) SearchSuggest(ctx context.Context, query string) ([]byte, error) {
	return c.Get(ctx, "/recipients/autocomplete", url.Values{"search": {query}})
}

// DocumentStatus returns the delivery status of a document.
func (c *Client) DocumentStatus(ctx context.Context, document uuid.UUID) ([]byte, error) {
	return c.Get(ctx, "/documents/"+document.String()+"/status", nil)
}

// DocumentEvents returns a page of document events. MaxResults defaults to
// 100; zero From and To are omitted.
func (c *Client) DocumentEvents(ctx context.Context, q EventsQuery) ([]byte, error) {
	if q.MaxResults <= 0 {
		q.MaxResults = defaultPageSize
	}

	params := url.Values{
		"offset":     {strconv.Itoa(q.Offset)},
		"maxResults": {strconv.Itoa(q.MaxResults)},
	}

	if !q.From.IsZero() {
		params.Set("from", q.From.Format(time.RFC3339))
	}

	if !q.To.IsZero() {
		params.Set("to", q.To.Format(time.RFC3339))
	}

	return c.Get(ctx, "/documents/events", params)
}

// Inbox returns a page of the sender's inbox. limit defaults to 100.
func (c *Client) Inbox(ctx context.Context, offset, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	return c.Get(ctx, "/"+c.sender.String()+"/inbox", url.Values{
		"offset": {strconv.Itoa(offset)},
		"limit":  {strconv.Itoa(limit)},
	})
}

// InboxDocument returns one document from the sender's inbox.
func (c *Client) InboxDocument(ctx context.Context, id int64) ([]byte, error) {
	return c.Get(ctx, "/"+c.sender.String()+"/inbox/"+strconv.FormatInt(id, 10), nil)
}

// Archives lists the sender's archives.
func (c *Client) Archives(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, "/archives", nil)
}

// Archive returns one archive by name.
func (c *Client) Archive(ctx context.Context, name string) ([]byte, error) {
	return c.Get(ctx, "/archives/"+url.PathEscape(name), nil)
}

// DefaultArchive returns the sender's default archive.
func (c *Client) DefaultArchive(ctx context.Context) ([]byte, error) {
	return c.Archive(ctx, DefaultArchiveName)
}

// ArchiveDocumentByUUID returns one document of the named archive.
func (c *Client) ArchiveDocumentByUUID(ctx context.Context, archive string, document uuid.UUID) ([]byte, error) {
	return c.Get(ctx, "/archives/"+url.PathEscape(archive)+"/documents/"+document.String(), nil)
}

// ArchiveDocument uploads a document into the named archive.
func (c *Client) ArchiveDocument(ctx context.Context, archive string, parts []Part) ([]byte, error) {
	return c.PostMultipart(ctx, "/archives/"+url.PathEscape(archive)+"/documents", parts)
}

// ArchiveDocumentsByReference returns archived documents tagged with
// referenceID.
func (c *Client) ArchiveDocumentsByReference(ctx context.Context, archive, referenceID string) ([]byte, error) {
	return c.Get(ctx, "/archives/"+url.PathEscape(archive)+"/documents", url.Values{
		"reference-id": {referenceID},
	})
}

// CreateBatch posts a batch definition.
func (c *Client) CreateBatch(ctx context.Context, body []byte) ([]byte, error) {
	return c.Post(ctx, "/batches", body)
}

// Batch returns a batch by ID.
func (c *Client) Batch(ctx context.Context, batch uuid.UUID) ([]byte, error) {
	return c.Get(ctx, "/batches/"+batch.String(), nil)
}

// AddMessageToBatch posts a message and its document contents into a
// batch.
func (c *Client) AddMessageToBatch(ctx context.Context, batch uuid.UUID, parts []Part) ([]byte, error) {
	return c.PostMultipart(ctx, "/batches/"+batch.String()+"/messages", parts)
}

// CompleteBatch follows the complete link of a batch.
func (c *Client) CompleteBatch(ctx context.Context, completeURI string) ([]byte, error) {
	if completeURI == "" {
		return nil, ErrMissingLink
	}

	return c.Post(ctx, completeURI, nil)
}

// CancelBatch follows the cancel link of a batch.
func (c *Client) CancelBatch(ctx context.Context, cancelURI string) error {
	if cancelURI == "" {
		return ErrMissingLink
	}

	_, err := c.Post(ctx, cancelURI, nil)

	return err
}

// SharedDocuments returns the documents of a share.
func (c *Client) SharedDocuments(ctx context.Context, share uuid.UUID) ([]byte, error) {
	return c.Get(ctx, "/shared-documents/"+share.String(), nil)
}

// StopSharing ends a share.
func (c *Client) StopSharing(ctx context.Context, share uuid.UUID) error {
	return c.Delete(ctx, "/shared-documents/"+share.String())
}

// DocumentContent streams document content from a content link. The
// caller closes the returned body.
func (c *Client) DocumentContent(ctx context.Context, contentURI string) (io.ReadCloser, error) {
	if contentURI == "" {
		return nil, ErrMissingLink
	}

	return c.GetStream(ctx, contentURI)
}

// DeleteDocument follows the delete link of an inbox or archive document.
func (c *Client) DeleteDocument(ctx context.Context, deleteURI string) error {
	if deleteURI == "" {
		return ErrMissingLink
	}

	return c.Delete(ctx, deleteURI)
}

// CreateOrActivateUserAccount posts a user-account-request for the
// sender.
func (c *Client) CreateOrActivateUserAccount(ctx context.Context, body []byte) ([]byte, error) {
	return c.Post(ctx, "/api/v8/"+c.sender.String()+"/user-accounts", body)
}
