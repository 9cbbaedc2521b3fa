package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Record is a DNS record in a zone.
type Record struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Proxied bool   `json:"proxied"`
	TTL     int    `json:"ttl,omitempty"`
}

// ListDNSRecords returns all records of the given type in a zone, following
// pagination.
func (c *Client) ListDNSRecords(ctx context.Context, zoneID, recordType string) ([]Record, error) {
	var records []Record
	for page := 1; ; page++ {
		path := fmt.Sprintf("/zones/%s/dns_records?type=%s&per_page=100&page=%d", zoneID, recordType, page)
		resp, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, fmt.Errorf("list DNS records: %w", err)
		}

		var pageRecords []Record
		if err := json.Unmarshal(resp.Result, &pageRecords); err != nil {
			return nil, fmt.Errorf("parse DNS records: %w", err)
		}
		records = append(records, pageRecords...)

		if resp.ResultInfo.TotalPages == 0 || page >= resp.ResultInfo.TotalPages {
			break
		}
	}
	return records, nil
}

// FindDNSRecord looks up a record by type and fully qualified name. Returns
// nil when no record matches.
func (c *Client) FindDNSRecord(ctx context.Context, zoneID, recordType, name string) (*Record, error) {
	path := fmt.Sprintf("/zones/%s/dns_records?type=%s&name=%s", zoneID, recordType, url.QueryEscape(name))
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("find DNS record: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(resp.Result, &records); err != nil {
		return nil, fmt.Errorf("parse DNS records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// EnsureDNSRecord creates the record, or updates the existing one when its
// content or proxy status differs. Returns the resulting record.
func (c *Client) EnsureDNSRecord(ctx context.Context, zoneID string, desired Record) (*Record, error) {
	existing, err := c.FindDNSRecord(ctx, zoneID, desired.Type, desired.Name)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/zones/%s/dns_records", zoneID), desired)
		if err != nil {
			return nil, fmt.Errorf("create DNS record %s: %w", desired.Name, err)
		}
		var created Record
		if err := json.Unmarshal(resp.Result, &created); err != nil {
			return nil, fmt.Errorf("parse DNS record: %w", err)
		}
		return &created, nil
	}

	if existing.Content == desired.Content && existing.Proxied == desired.Proxied {
		return existing, nil
	}

	desired.ID = existing.ID
	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, existing.ID), desired)
	if err != nil {
		return nil, fmt.Errorf("update DNS record %s: %w", desired.Name, err)
	}
	var updated Record
	if err := json.Unmarshal(resp.Result, &updated); err != nil {
		return nil, fmt.Errorf("parse DNS record: %w", err)
	}
	return &updated, nil
}

// DeleteDNSRecord removes a record by ID.
func (c *Client) DeleteDNSRecord(ctx context.Context, zoneID, recordID string) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, recordID), nil)
	if err != nil {
		return fmt.Errorf("delete DNS record: %w", err)
	}
	return nil
}
