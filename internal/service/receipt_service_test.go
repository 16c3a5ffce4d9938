package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"ai-helpdesk-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receiptJSON = `{
  "items": [
    {"name": "Milk", "qty": 1, "unit_price": "2.50", "line_total": "2.50"},
    {"name": "Bread", "qty": 2, "unit_price": "1.20", "line_total": "2.40"}
  ],
  "total": "4.90"
}`

func TestExtractParsesModelOutput(t *testing.T) {
	model := &stubLLM{response: receiptJSON}
	publisher := newCapturingPublisher()
	svc := NewReceiptService(model, publisher, noopLogger{})

	res, err := svc.Extract(context.Background(), "receipt.jpg", "image/jpeg", []byte{0xFF, 0xD8})
	require.NoError(t, err)

	assert.NotEqual(t, "", res.RecordID.String())
	assert.Equal(t, "4.90", res.Prediction.Total)
	require.Len(t, res.Prediction.Items, 2)
	assert.Equal(t, "Milk", res.Prediction.Items[0].Name)

	// The image travels as a data URI on the user turn, at temperature 0.
	require.Len(t, model.history, 1)
	assert.True(t, strings.HasPrefix(model.history[0].ImageURL, "data:image/jpeg;base64,"))
	assert.True(t, model.options.TemperatureSet)
	assert.Zero(t, model.options.Temperature)
}

func TestExtractAcceptsProseWrappedJSON(t *testing.T) {
	model := &stubLLM{response: "Here is what I found on the receipt:\n" + receiptJSON + "\nLet me know if you need more."}
	svc := NewReceiptService(model, newCapturingPublisher(), noopLogger{})

	res, err := svc.Extract(context.Background(), "receipt.png", "image/png", []byte{1})
	require.NoError(t, err)
	assert.Equal(t, "4.90", res.Prediction.Total)
}

func TestExtractPublishesRecord(t *testing.T) {
	publisher := newCapturingPublisher()
	svc := NewReceiptService(&stubLLM{response: receiptJSON}, publisher, noopLogger{})

	res, err := svc.Extract(context.Background(), "receipt.jpg", "image/jpeg", []byte{1})
	require.NoError(t, err)

	msgs := publisher.published[events.TopicReceiptExtracted]
	require.Len(t, msgs, 1)

	var ev events.ReceiptExtracted
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &ev))
	assert.Equal(t, res.RecordID, ev.Record.ID)
	assert.Equal(t, "receipt.jpg", ev.Record.File)
	assert.Equal(t, res.Prediction, ev.Record.Prediction)
	assert.False(t, ev.Record.Timestamp.IsZero())
}

func TestExtractNoStructuredResult(t *testing.T) {
	cases := map[string]string{
		"prose only":  "Sorry, I cannot read this image.",
		"broken json": `{"items": [`,
	}
	for name, response := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewReceiptService(&stubLLM{response: response}, newCapturingPublisher(), noopLogger{})
			_, err := svc.Extract(context.Background(), "receipt.jpg", "image/jpeg", []byte{1})
			assert.ErrorIs(t, err, ErrNoStructuredResult)
		})
	}
}

func TestExtractUpstreamFailure(t *testing.T) {
	svc := NewReceiptService(&stubLLM{err: errStub}, newCapturingPublisher(), noopLogger{})
	_, err := svc.Extract(context.Background(), "receipt.jpg", "image/jpeg", []byte{1})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestExtractDefaultsMimeType(t *testing.T) {
	model := &stubLLM{response: receiptJSON}
	svc := NewReceiptService(model, newCapturingPublisher(), noopLogger{})

	_, err := svc.Extract(context.Background(), "receipt", "", []byte{1})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(model.history[0].ImageURL, "data:image/jpeg;base64,"))
}
