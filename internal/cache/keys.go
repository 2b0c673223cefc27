package cache

import (
	"fmt"

	"github.com/google/uuid"
)

func CategoryKey(id uuid.UUID) string {
	return fmt.Sprintf("category:%s", id)
}

func PaymentMethodKey(id uuid.UUID) string {
	return fmt.Sprintf("payment_method:%s", id)
}
