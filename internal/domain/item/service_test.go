package item_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"chatstore/internal/domain/item"
	"chatstore/internal/infrastructure/repository/memory"
	"chatstore/internal/utils/platformerrors"
)

func TestService_PutNilItem(t *testing.T) {
	svc := item.NewService(memory.NewStore().Items(), zerolog.Nop())

	err := svc.Put(context.Background(), "th_1", nil, "user-a")
	if err == nil {
		t.Fatal("Put(nil) returned no error, want validation error")
	}
	if platformerrors.TypeOf(err) != platformerrors.ErrorTypeValidation {
		t.Errorf("Put(nil) error type = %v, want validation", platformerrors.TypeOf(err))
	}
}
