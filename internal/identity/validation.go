package identity

import "fmt"

// ValidateSerialNumber checks that a DeviceSerialNumber can seed a pseudonymous
// patient identifier. Files failing this check are rejected outright; they are
// never given a fallback identity.
func ValidateSerialNumber(serial string) error {
	if serial == "" {
		return fmt.Errorf("%w: DeviceSerialNumber is absent", ErrValidation)
	}
	if !isDigits(serial) {
		return fmt.Errorf("%w: DeviceSerialNumber <%s> is not numeric", ErrValidation, serial)
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
