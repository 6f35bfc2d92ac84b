// internal/prompts/business.go
package prompts

import (
	"fmt"

	"negotiation-experiments/internal/common/validation"
)

// Canonical business-configuration field names. These appear in experiment
// IDs and as config_<field> result columns, so the order here is load-bearing:
// it fixes both the ID encoding and the column layout.
const (
	FieldBusinessType         = "business_type"
	FieldClientsPerMonth      = "clients_per_month"
	FieldAverageContractValue = "average_contract_value"
	FieldAdditionalClients    = "additional_clients_from_software"
	FieldAdminTimePercentage  = "admin_time_percentage"
	FieldClientName           = "client_name"
	FieldAgentName            = "agent_name"
	FieldVendorName           = "vendor_name"
	FieldSoftwareType         = "software_type"
)

// FieldNames returns the canonical field order.
func FieldNames() []string {
	return []string{
		FieldBusinessType,
		FieldClientsPerMonth,
		FieldAverageContractValue,
		FieldAdditionalClients,
		FieldAdminTimePercentage,
		FieldClientName,
		FieldAgentName,
		FieldVendorName,
		FieldSoftwareType,
	}
}

// BusinessConfig carries the business facts interpolated into every prompt
// variant. Construct via DefaultBusinessConfig and apply overrides; treat as
// immutable once a prompt has been rendered from it.
type BusinessConfig struct {
	BusinessType         string
	ClientsPerMonth      int
	AverageContractValue int
	AdditionalClients    int
	AdminTimePercentage  int
	ClientName           string
	AgentName            string
	VendorName           string
	SoftwareType         string
}

// DefaultBusinessConfig returns the default-value table. Every field has a
// value; parameters not varied in a run keep these.
func DefaultBusinessConfig() BusinessConfig {
	return BusinessConfig{
		BusinessType:         "marketing consultant for small businesses in the US",
		ClientsPerMonth:      20,
		AverageContractValue: 200,
		AdditionalClients:    1,
		AdminTimePercentage:  10,
		ClientName:           "Jane Doe",
		AgentName:            "NegotiationAgentZero",
		VendorName:           "John Smith",
		SoftwareType:         "CRM software",
	}
}

// Set overwrites one named field. Values arrive typed from the configuration
// space (int for the numeric facts, string otherwise).
func (c *BusinessConfig) Set(field string, value interface{}) error {
	switch field {
	case FieldBusinessType:
		return setString(field, value, &c.BusinessType)
	case FieldClientsPerMonth:
		return setInt(field, value, &c.ClientsPerMonth)
	case FieldAverageContractValue:
		return setInt(field, value, &c.AverageContractValue)
	case FieldAdditionalClients:
		return setInt(field, value, &c.AdditionalClients)
	case FieldAdminTimePercentage:
		return setInt(field, value, &c.AdminTimePercentage)
	case FieldClientName:
		return setString(field, value, &c.ClientName)
	case FieldAgentName:
		return setString(field, value, &c.AgentName)
	case FieldVendorName:
		return setString(field, value, &c.VendorName)
	case FieldSoftwareType:
		return setString(field, value, &c.SoftwareType)
	}
	return fmt.Errorf("unknown business configuration field %q", field)
}

// Get returns one named field's value.
func (c BusinessConfig) Get(field string) (interface{}, bool) {
	switch field {
	case FieldBusinessType:
		return c.BusinessType, true
	case FieldClientsPerMonth:
		return c.ClientsPerMonth, true
	case FieldAverageContractValue:
		return c.AverageContractValue, true
	case FieldAdditionalClients:
		return c.AdditionalClients, true
	case FieldAdminTimePercentage:
		return c.AdminTimePercentage, true
	case FieldClientName:
		return c.ClientName, true
	case FieldAgentName:
		return c.AgentName, true
	case FieldVendorName:
		return c.VendorName, true
	case FieldSoftwareType:
		return c.SoftwareType, true
	}
	return nil, false
}

// Fields returns (name, value) pairs in canonical order.
func (c BusinessConfig) Fields() []FieldValue {
	out := make([]FieldValue, 0, 9)
	for _, name := range FieldNames() {
		v, _ := c.Get(name)
		out = append(out, FieldValue{Name: name, Value: v})
	}
	return out
}

// FieldValue is one (field, value) pair of a BusinessConfig.
type FieldValue struct {
	Name  string
	Value interface{}
}

// Validate checks the business facts before any prompt is rendered. Planning
// errors are fatal; a bad configuration must never reach the completion
// service.
func (c BusinessConfig) Validate() *validation.ValidationResult {
	return validation.NewChecker().
		RequireNonEmpty(FieldBusinessType, c.BusinessType).
		RequirePositive(FieldClientsPerMonth, c.ClientsPerMonth).
		RequirePositive(FieldAverageContractValue, c.AverageContractValue).
		RequirePositive(FieldAdditionalClients, c.AdditionalClients).
		RequirePercentage(FieldAdminTimePercentage, c.AdminTimePercentage).
		RequireNonEmpty(FieldClientName, c.ClientName).
		RequireNonEmpty(FieldAgentName, c.AgentName).
		RequireNonEmpty(FieldVendorName, c.VendorName).
		RequireNonEmpty(FieldSoftwareType, c.SoftwareType).
		Result()
}

func setString(field string, value interface{}, dst *string) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("field %q expects a string, got %T", field, value)
	}
	*dst = s
	return nil
}

func setInt(field string, value interface{}, dst *int) error {
	switch v := value.(type) {
	case int:
		*dst = v
	case float64:
		// JSON catalogs decode numbers as float64.
		*dst = int(v)
	default:
		return fmt.Errorf("field %q expects an int, got %T", field, value)
	}
	return nil
}
