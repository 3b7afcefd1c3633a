package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robomart/toystore/internal/domain"
	"github.com/robomart/toystore/internal/event"
	"github.com/robomart/toystore/pkg/validator"
)

type fakeContactRepo struct {
	created []*domain.ContactMessage
	err     error
}

func (f *fakeContactRepo) Create(_ context.Context, msg *domain.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, msg)
	return nil
}

func validContactInput() ContactInput {
	return ContactInput{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "Do you ship the Galaxy Rover overseas?",
	}
}

func TestSubmitPersistsAndEmits(t *testing.T) {
	repo := &fakeContactRepo{}
	emitter := &recordingEmitter{}
	svc := NewContactService(repo, emitter, testLogger())

	msg, err := svc.Submit(context.Background(), validContactInput())
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())
	require.Len(t, repo.created, 1)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, event.ContactFormSubmit, emitter.events[0].name)
	payload, ok := emitter.events[0].payload.(event.ContactPayload)
	require.True(t, ok)
	assert.Equal(t, msg.ID, payload.MessageID)
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewContactService(repo, &recordingEmitter{}, testLogger())

	tests := []struct {
		name  string
		morph func(*ContactInput)
	}{
		{"missing name", func(in *ContactInput) { in.Name = "" }},
		{"bad email", func(in *ContactInput) { in.Email = "not-an-email" }},
		{"message too short", func(in *ContactInput) { in.Message = "hi" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validContactInput()
			tt.morph(&input)

			_, err := svc.Submit(context.Background(), input)
			require.Error(t, err)

			var valErr *validator.ValidationError
			assert.ErrorAs(t, err, &valErr)
			assert.Empty(t, repo.created)
		})
	}
}

func TestSubmitToleratesEmitterFailure(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewContactService(repo, &recordingEmitter{err: errors.New("kafka down")}, testLogger())

	msg, err := svc.Submit(context.Background(), validContactInput())
	require.NoError(t, err)
	assert.NotNil(t, msg)
	assert.Len(t, repo.created, 1)
}

func TestSubmitPropagatesRepoError(t *testing.T) {
	repo := &fakeContactRepo{err: errors.New("postgres down")}
	svc := NewContactService(repo, &recordingEmitter{}, testLogger())

	_, err := svc.Submit(context.Background(), validContactInput())
	require.Error(t, err)
}
