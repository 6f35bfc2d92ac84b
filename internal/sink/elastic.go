// internal/sink/elastic.go
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/common/metrics"
)

// ElasticSink indexes one document per result for ad-hoc exploration in
// Kibana alongside the canonical CSV output.
type ElasticSink struct {
	client *elasticsearch.Client
	index  string
	runID  string
	now    func() time.Time
}

func NewElasticSink(addresses []string, index, runID string) (*ElasticSink, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeSinkUnavailable, "cannot create elasticsearch client", err)
	}
	return &ElasticSink{client: client, index: index, runID: runID, now: time.Now}, nil
}

func (s *ElasticSink) Write(ctx context.Context, record Record) error {
	body, err := json.Marshal(record.Document(s.runID, s.now()))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "cannot encode result document", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(s.runID+":"+record.ExperimentID),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "elasticsearch index request failed", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.New(apperrors.ErrCodeOutputWriteFailed,
			fmt.Sprintf("elasticsearch index error: %s", res.Status()))
	}
	metrics.RecordsWritten.WithLabelValues("elasticsearch").Inc()
	return nil
}

func (s *ElasticSink) Close() error {
	return nil
}
