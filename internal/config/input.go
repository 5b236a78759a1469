package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct {
	// CurrentYear anchors reverse requests that do not set current_year
	CurrentYear int
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{CurrentYear: time.Now().Year()}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, completes and validates a plan
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ApplyDefaults fills optional fields that have a sensible default
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	if config.BuildUp != nil && config.BuildUp.ContributionTiming == "" {
		config.BuildUp.ContributionTiming = domain.EndOfPeriod
	}
	if config.Reverse != nil && config.Reverse.CurrentYear == 0 {
		config.Reverse.CurrentYear = ip.CurrentYear
	}
	for i := range config.IncomeSources {
		if config.IncomeSources[i].Origin == "" {
			config.IncomeSources[i].Origin = domain.OriginManual
		}
	}
}

// ValidateConfiguration validates the loaded plan. The first invalid input is
// reported; nothing is computed.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.BuildUp == nil && config.Withdrawal == nil && config.Reverse == nil {
		return domain.NewValidationError("plan", "at least one of build_up, withdrawal or reverse is required")
	}
	if err := ip.validateHousehold(&config.Household); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}
	if err := calculation.ValidateSources(config.IncomeSources); err != nil {
		return err
	}
	for i, src := range config.IncomeSources {
		if src.Owner == domain.OwnerPartner && !config.Household.HasPartner() {
			return domain.NewValidationError(fmt.Sprintf("income_sources[%d].owner", i), "partner income without a partner")
		}
	}
	if config.BuildUp != nil {
		if err := calculation.ValidateBuildUp(*config.BuildUp); err != nil {
			return err
		}
	}
	if config.Withdrawal != nil {
		if err := calculation.ValidateWithdrawal(*config.Withdrawal); err != nil {
			return err
		}
	}
	if config.Reverse != nil {
		if err := calculation.ValidateReverse(*config.Reverse); err != nil {
			return err
		}
	}
	return nil
}

// validateHousehold checks birth dates for plausibility. A missing birth date is
// allowed: state pension offsets are then simply unavailable.
func (ip *InputParser) validateHousehold(household *domain.Household) error {
	people := map[domain.Owner]*domain.Person{domain.OwnerSelf: &household.Self}
	if household.HasPartner() {
		people[domain.OwnerPartner] = household.Partner
	}
	for _, owner := range []domain.Owner{domain.OwnerSelf, domain.OwnerPartner} {
		person, ok := people[owner]
		if !ok || !person.HasBirthDate() {
			continue
		}
		if ip.CurrentYear > 0 && person.BirthDate.Year() > ip.CurrentYear {
			return domain.NewValidationError(fmt.Sprintf("household.%s.birth_date", owner), "lies in the future")
		}
	}
	return nil
}
