// Package pubsub publishes mail events to Google Pub/Sub or, in development,
// straight to the worker's push endpoint.
package pubsub

import (
	"encoding/json"

	"contactbook/internal/domain/constants"
	"contactbook/internal/domain/service"

	"github.com/pkg/errors"
)

// PushMessage represents the structure of a Pub/Sub push message
// This mimics the format Google Pub/Sub uses when pushing to HTTP endpoints
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// encodeMailEvent serializes msg and derives the attributes used for
// filtering and tracing.
func encodeMailEvent(msg *service.MailMessage) ([]byte, map[string]string, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		constants.AttrTemplate: msg.Template,
	}
	if msg.RequestID != "" {
		attributes[constants.AttrRequestID] = msg.RequestID
	}

	return data, attributes, nil
}
