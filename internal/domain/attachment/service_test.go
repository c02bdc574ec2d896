package attachment_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"chatstore/internal/domain/attachment"
	"chatstore/internal/infrastructure/repository/memory"
	"chatstore/internal/utils/platformerrors"
)

func TestService_PutNilAttachment(t *testing.T) {
	svc := attachment.NewService(memory.NewStore().Attachments(), zerolog.Nop())

	err := svc.Put(context.Background(), nil, "user-a")
	if err == nil {
		t.Fatal("Put(nil) returned no error, want validation error")
	}
	if platformerrors.TypeOf(err) != platformerrors.ErrorTypeValidation {
		t.Errorf("Put(nil) error type = %v, want validation", platformerrors.TypeOf(err))
	}
}
