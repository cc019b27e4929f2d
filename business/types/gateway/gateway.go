// Package gateway represents the payment gateways a portal can be wired to.
package gateway

import "fmt"

// The set of gateways that can be configured.
var (
	PayPal = newGateway("PAYPAL")
)

// =============================================================================

// Set of known gateways.
var gateways = make(map[string]Gateway)

// Gateway represents a payment gateway in the system.
type Gateway struct {
	value string
}

func newGateway(gateway string) Gateway {
	g := Gateway{gateway}
	gateways[gateway] = g
	return g
}

// String returns the name of the gateway.
func (g Gateway) String() string {
	return g.value
}

// Equal provides support for the go-cmp package and testing.
func (g Gateway) Equal(g2 Gateway) bool {
	return g.value == g2.value
}

// IsZero reports whether no gateway was declared.
func (g Gateway) IsZero() bool {
	return g.value == ""
}

// MarshalText provides support for logging and any marshal needs.
func (g Gateway) MarshalText() ([]byte, error) {
	return []byte(g.value), nil
}

// =============================================================================

// Parse parses the string value and returns a gateway if one exists.
func Parse(value string) (Gateway, error) {
	gateway, exists := gateways[value]
	if !exists {
		return Gateway{}, fmt.Errorf("invalid gateway %q", value)
	}

	return gateway, nil
}

// MustParse parses the string value and returns a gateway if one exists. If
// an error occurs the function panics.
func MustParse(value string) Gateway {
	gateway, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return gateway
}
