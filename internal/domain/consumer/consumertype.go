package consumer

import "candlepin/internal/shared/errors"

// Type classifies what a consumer represents.
type Type string

const (
	TypeSystem      Type = "system"
	TypePerson      Type = "person"
	TypeHypervisor  Type = "hypervisor"
	TypeDistributor Type = "distributor"
)

func ParseType(value string) (Type, error) {
	switch Type(value) {
	case "":
		return TypeSystem, nil
	case TypeSystem, TypePerson, TypeHypervisor, TypeDistributor:
		return Type(value), nil
	default:
		return "", errors.NewValidationError("unknown consumer type", value)
	}
}

func (t Type) String() string {
	return string(t)
}

// IsManifest reports whether the consumer exports subscriptions rather
// than running content. Compliance is not tracked for such consumers.
func (t Type) IsManifest() bool {
	return t == TypeDistributor
}
