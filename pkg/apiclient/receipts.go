package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/finwise/finwise-go/pkg/apierr"
)

// UploadReceipt attaches a receipt document to a transaction. The file is
// sent as a multipart form upload.
func (c *Client) UploadReceipt(ctx context.Context, transactionID int64, fileName string, file io.Reader) (*Receipt, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, apierr.Client(fmt.Errorf("create multipart part: %w", err))
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, apierr.Client(fmt.Errorf("read upload file: %w", err))
	}
	if err := mw.WriteField("transactionId", strconv.FormatInt(transactionID, 10)); err != nil {
		return nil, apierr.Client(fmt.Errorf("write multipart field: %w", err))
	}
	if err := mw.Close(); err != nil {
		return nil, apierr.Client(fmt.Errorf("finalize multipart body: %w", err))
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/receipts", nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out Receipt
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apierr.Client(fmt.Errorf("decode response body: %w", err))
	}
	return &out, nil
}

// Receipts lists receipts, optionally narrowed to one transaction.
func (c *Client) Receipts(ctx context.Context, transactionID int64) ([]Receipt, error) {
	q := url.Values{}
	if transactionID != 0 {
		q.Set("transactionId", strconv.FormatInt(transactionID, 10))
	}
	var out []Receipt
	if err := c.do(ctx, http.MethodGet, "/receipts", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadReceipt fetches the stored document bytes for a receipt.
func (c *Client) DownloadReceipt(ctx context.Context, id int64) (*ReceiptFile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/receipts/%d/download", id), nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Del("Accept")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Client(fmt.Errorf("read download body: %w", err))
	}

	file := &ReceiptFile{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		file.FileName = params["filename"]
	}
	return file, nil
}

// DeleteReceipt removes a receipt and its stored document.
func (c *Client) DeleteReceipt(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/receipts/%d", id), nil, nil, nil)
}
