/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package natsutil

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/jacklcz/spacex-sdatamanager/pkg/logger"
	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

var ErrSubjectRequired = errors.New("nats subject is required")

// DefaultStreamName is used when the config names no stream.
const DefaultStreamName = "SDATAMANAGER_TELEMETRY"

// EventPublisher publishes payloads to one JetStream subject.
type EventPublisher struct {
	js      jetstream.JetStream
	stream  string
	subject string
}

// NewEventPublisher wraps an existing JetStream context.
func NewEventPublisher(js jetstream.JetStream, streamName, subject string) *EventPublisher {
	return &EventPublisher{
		js:      js,
		stream:  streamName,
		subject: subject,
	}
}

// CreateEventPublisher binds to the configured stream, creating it or adding
// the subject when needed.
func CreateEventPublisher(ctx context.Context, nc *nats.Conn, cfg *models.NATSConfig, log logger.Logger) (*EventPublisher, error) {
	if cfg == nil || strings.TrimSpace(cfg.Subject) == "" {
		return nil, ErrSubjectRequired
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	streamName := cfg.Stream
	if streamName == "" {
		streamName = DefaultStreamName
	}

	var (
		js  jetstream.JetStream
		err error
	)

	if cfg.Domain != "" {
		js, err = jetstream.NewWithDomain(nc, cfg.Domain)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream context with domain %s: %w", cfg.Domain, err)
		}
	} else {
		js, err = jetstream.New(nc)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}
	}

	var subjects []string

	stream, err := js.Stream(ctx, streamName)
	if err == nil {
		info, infoErr := stream.Info(ctx)
		if infoErr != nil {
			return nil, fmt.Errorf("failed to read stream %s: %w", streamName, infoErr)
		}

		subjects = info.Config.Subjects
		if subjectCovered(subjects, cfg.Subject) {
			return NewEventPublisher(js, streamName, cfg.Subject), nil
		}
	} else if !isStreamMissingErr(err) {
		return nil, fmt.Errorf("failed to look up stream %s: %w", streamName, err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: ensureSubjectList(subjects, cfg.Subject),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create or update stream %s: %w", streamName, err)
	}

	log.Info().Str("stream", streamName).Str("subject", cfg.Subject).Msg("Ensured NATS JetStream stream")

	return NewEventPublisher(js, streamName, cfg.Subject), nil
}

// Subject is the subject payloads are published to.
func (p *EventPublisher) Subject() string {
	return p.subject
}

// Publish sends payload with msgID as the JetStream de-duplication id.
func (p *EventPublisher) Publish(ctx context.Context, msgID string, payload []byte) (uint64, error) {
	var opts []jetstream.PublishOpt
	if msgID != "" {
		opts = append(opts, jetstream.WithMsgID(msgID))
	}

	ack, err := p.js.Publish(ctx, p.subject, payload, opts...)
	if err != nil {
		return 0, fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}

	return ack.Sequence, nil
}

func ensureSubjectList(subjects []string, subject string) []string {
	if subjectCovered(subjects, subject) {
		return subjects
	}

	return append(subjects, subject)
}

func subjectCovered(subjects []string, subject string) bool {
	for _, pattern := range subjects {
		if matchesSubject(pattern, subject) {
			return true
		}
	}

	return false
}

// matchesSubject reports whether a NATS subject pattern (with * and >) matches subject.
func matchesSubject(pattern, subject string) bool {
	if pattern == subject {
		return true
	}

	pTokens := strings.Split(pattern, ".")
	sTokens := strings.Split(subject, ".")

	for i, tok := range pTokens {
		if tok == ">" {
			return len(sTokens) > i
		}

		if i >= len(sTokens) {
			return false
		}

		if tok != "*" && tok != sTokens[i] {
			return false
		}
	}

	return len(pTokens) == len(sTokens)
}

func isStreamMissingErr(err error) bool {
	return errors.Is(err, jetstream.ErrStreamNotFound) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrStreamNotFound) ||
		errors.Is(err, nats.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrNoResponders)
}
