package search

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// AuthEvent is one entry in the authentication audit trail.
type AuthEvent struct {
	Action    string         `json:"action"`
	UserID    int64          `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Success   bool           `json:"success"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"@timestamp"`
}

// AuditLog indexes auth events into Elasticsearch.
type AuditLog struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    logrus.FieldLogger
	Timeout   time.Duration
}

func NewAuditLog(es *elasticsearch.Client, index string, logger logrus.FieldLogger) *AuditLog {
	return &AuditLog{ES: es, IndexName: index, Logger: logger, Timeout: 3 * time.Second}
}

// Index writes ev and reports transport or response errors.
func (a *AuditLog) Index(ctx context.Context, ev AuthEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return oops.With("operation", "encode audit event").Wrap(err)
	}
	req := esapi.IndexRequest{Index: a.IndexName, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()
	res, err := req.Do(c, a.ES)
	if err != nil {
		return oops.With("operation", "index audit event").With("index", a.IndexName).Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return oops.With("operation", "index audit event").With("index", a.IndexName).Errorf("elasticsearch: %s", res.Status())
	}
	return nil
}

// Record indexes ev and logs failures. Audit problems never affect the request.
func (a *AuditLog) Record(ctx context.Context, ev AuthEvent) {
	if a == nil || a.ES == nil || a.IndexName == "" {
		return
	}
	if err := a.Index(ctx, ev); err != nil {
		a.Logger.WithError(err).WithField("action", ev.Action).Warn("audit index failed")
	}
}
