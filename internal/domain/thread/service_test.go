package thread_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"chatstore/internal/domain/thread"
	"chatstore/internal/infrastructure/repository/memory"
	"chatstore/internal/utils/platformerrors"
)

func TestService_PutNilThread(t *testing.T) {
	svc := thread.NewService(memory.NewStore().Threads(), zerolog.Nop())

	err := svc.Put(context.Background(), nil, "user-a")
	if err == nil {
		t.Fatal("Put(nil) returned no error, want validation error")
	}
	if platformerrors.TypeOf(err) != platformerrors.ErrorTypeValidation {
		t.Errorf("Put(nil) error type = %v, want validation", platformerrors.TypeOf(err))
	}
}

func TestService_PutEmptyID(t *testing.T) {
	svc := thread.NewService(memory.NewStore().Threads(), zerolog.Nop())

	err := svc.Put(context.Background(), &thread.Thread{Payload: []byte(`{}`)}, "user-a")
	if platformerrors.TypeOf(err) != platformerrors.ErrorTypeValidation {
		t.Errorf("Put with empty id error type = %v, want validation", platformerrors.TypeOf(err))
	}
}
