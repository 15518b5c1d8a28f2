package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex lease_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `RUN-xYZ12A8Q`.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_LEASE                 = "lease"
	UUID_PREFIX_RENT_TERM             = "term"
	UUID_PREFIX_RECURRING_CHARGE      = "rch"
	UUID_PREFIX_LEASE_BILLING_SETTING = "lbs"
	UUID_PREFIX_CHARGE_TYPE           = "ct"
	UUID_PREFIX_INVOICE               = "inv"
	UUID_PREFIX_INVOICE_LINE_ITEM     = "inv_line"
	UUID_PREFIX_CREDIT_NOTE           = "cn"
	UUID_PREFIX_CREDIT_NOTE_LINE_ITEM = "cn_line"
	UUID_PREFIX_UTILITY_RATE_PLAN     = "urp"
	UUID_PREFIX_UTILITY_RATE_SLAB     = "slab"
	UUID_PREFIX_UTILITY_STATEMENT     = "ustmt"
	UUID_PREFIX_NUMBER_SEQUENCE       = "seq"
	UUID_PREFIX_INVOICE_RUN           = "run"
)

const (
	SHORT_ID_PREFIX_INVOICE_RUN = "RUN-"
)
