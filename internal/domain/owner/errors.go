package owner

import (
	"fmt"

	"candlepin/internal/shared/errors"
)

func ErrOwnerNotFound(key string) error {
	return errors.NewNotFoundError("owner not found", fmt.Sprintf("owner_key=%s", key))
}

func ErrOwnerIDNotFound(id uint) error {
	return errors.NewNotFoundError("owner not found", fmt.Sprintf("owner_id=%d", id))
}
