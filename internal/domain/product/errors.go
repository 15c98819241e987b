package product

import (
	"fmt"

	"candlepin/internal/shared/errors"
)

func ErrProductNotFound(id string) error {
	return errors.NewNotFoundError("product not found", fmt.Sprintf("product_id=%s", id))
}
