package consumer

import (
	"fmt"

	"candlepin/internal/shared/errors"
)

func ErrConsumerNotFound(uuid string) error {
	return errors.NewNotFoundError("consumer not found", fmt.Sprintf("uuid=%s", uuid))
}

func ErrGuestNotFound(uuid, guestID string) error {
	return errors.NewNotFoundError("guest id not found on consumer", fmt.Sprintf("uuid=%s guest_id=%s", uuid, guestID))
}
