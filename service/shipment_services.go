package service

import (
	"strings"

	"gls-plugin/config"
)

// Destination country the carrier excludes from the 24H guarantee.
const guarantee24HExcludedCountry = "RS"

// ServiceOptions is the fully resolved per-shipment service
// configuration the eligibility rules evaluate against.
type ServiceOptions struct {
	Guarantee24H        bool
	ExpressTime         string
	ContactOnDelivery   bool
	FlexibleDelivery    bool
	FlexibleDeliverySMS bool
	SMSNotify           bool
	SMSTemplate         string
	SMSPreadvice        bool
	AddresseeOnly       bool
	Insurance           bool
}

func OptionsFromConfig(defaults config.ServiceDefaultsConfig) ServiceOptions {
	return ServiceOptions{
		Guarantee24H:        defaults.Guarantee24H,
		ExpressTime:         strings.ToUpper(strings.TrimSpace(defaults.ExpressTime)),
		ContactOnDelivery:   defaults.ContactOnDelivery,
		FlexibleDelivery:    defaults.FlexibleDelivery,
		FlexibleDeliverySMS: defaults.FlexibleDeliverySMS,
		SMSNotify:           defaults.SMSNotify,
		SMSTemplate:         defaults.SMSTemplate,
		SMSPreadvice:        defaults.SMSPreadvice,
		AddresseeOnly:       defaults.AddresseeOnly,
		Insurance:           defaults.Insurance,
	}
}

// ServiceOverrides carries explicit per-shipment choices. A nil field
// falls back to the global default for that service; a set field wins.
type ServiceOverrides struct {
	Guarantee24H        *bool   `json:"guarantee_24h,omitempty"`
	ExpressTime         *string `json:"express_time,omitempty"`
	ContactOnDelivery   *bool   `json:"contact_on_delivery,omitempty"`
	FlexibleDelivery    *bool   `json:"flexible_delivery,omitempty"`
	FlexibleDeliverySMS *bool   `json:"flexible_delivery_sms,omitempty"`
	SMSNotify           *bool   `json:"sms_notify,omitempty"`
	SMSTemplate         *string `json:"sms_template,omitempty"`
	SMSPreadvice        *bool   `json:"sms_preadvice,omitempty"`
	AddresseeOnly       *bool   `json:"addressee_only,omitempty"`
	Insurance           *bool   `json:"insurance,omitempty"`
}

// Resolve merges overrides onto defaults, field by field.
func (o ServiceOptions) Resolve(overrides *ServiceOverrides) ServiceOptions {
	if overrides == nil {
		return o
	}
	resolved := o
	if overrides.Guarantee24H != nil {
		resolved.Guarantee24H = *overrides.Guarantee24H
	}
	if overrides.ExpressTime != nil {
		resolved.ExpressTime = strings.ToUpper(strings.TrimSpace(*overrides.ExpressTime))
	}
	if overrides.ContactOnDelivery != nil {
		resolved.ContactOnDelivery = *overrides.ContactOnDelivery
	}
	if overrides.FlexibleDelivery != nil {
		resolved.FlexibleDelivery = *overrides.FlexibleDelivery
	}
	if overrides.FlexibleDeliverySMS != nil {
		resolved.FlexibleDeliverySMS = *overrides.FlexibleDeliverySMS
	}
	if overrides.SMSNotify != nil {
		resolved.SMSNotify = *overrides.SMSNotify
	}
	if overrides.SMSTemplate != nil {
		resolved.SMSTemplate = *overrides.SMSTemplate
	}
	if overrides.SMSPreadvice != nil {
		resolved.SMSPreadvice = *overrides.SMSPreadvice
	}
	if overrides.AddresseeOnly != nil {
		resolved.AddresseeOnly = *overrides.AddresseeOnly
	}
	if overrides.Insurance != nil {
		resolved.Insurance = *overrides.Insurance
	}
	return resolved
}

// BuildServiceList evaluates the optional-service rules for one
// shipment and produces its ServiceList in a fixed order. The order is
// load-bearing: later rules consult earlier decisions (express
// suppresses flexible delivery), and a deterministic list keeps the
// payload reproducible.
func BuildServiceList(
	shipment Shipment,
	originCountry string,
	opts ServiceOptions,
	expressRules ExpressRuleTable,
	insuranceBands InsuranceBandTable,
) ([]ParcelService, error) {
	originCountry = strings.ToUpper(strings.TrimSpace(originCountry))
	pickupPoint := shipment.DeliveryMode == DeliveryModePickupPoint
	services := make([]ParcelService, 0, 8)

	// Pickup-point delivery is not optional once the customer chose a
	// parcel shop: a missing point id aborts the whole build.
	if pickupPoint {
		pointID := strings.TrimSpace(shipment.PickupPointID)
		if pointID == "" {
			return nil, ErrMissingPickupInfo
		}
		services = append(services, ParcelService{
			Code:         "PSD",
			PSDParameter: &PSDParameter{StringValue: pointID},
		})
	}

	if opts.Guarantee24H && shipment.DestinationCountry() != guarantee24HExcludedCountry {
		services = append(services, ParcelService{Code: "24H"})
	}

	expressSelected := false
	if !pickupPoint && opts.ExpressTime != "" &&
		expressRules.Offered(originCountry, shipment.DestinationZip(), opts.ExpressTime) {
		services = append(services, ParcelService{Code: opts.ExpressTime})
		expressSelected = true
	}

	if !pickupPoint && opts.ContactOnDelivery {
		services = append(services, ParcelService{
			Code:         "CS1",
			CS1Parameter: &ValueParameter{Value: shipment.Phone()},
		})
	}

	// Express and flexible delivery are mutually exclusive; express won
	// above, so both FDS and its SMS add-on stay out.
	flexibleSelected := false
	if !pickupPoint && !expressSelected && opts.FlexibleDelivery {
		services = append(services, ParcelService{
			Code:         "FDS",
			FDSParameter: &ValueParameter{Value: strings.TrimSpace(shipment.BillingEmail)},
		})
		flexibleSelected = true
	}

	if flexibleSelected && opts.FlexibleDeliverySMS {
		services = append(services, ParcelService{
			Code:         "FSS",
			FSSParameter: &ValueParameter{Value: shipment.Phone()},
		})
	}

	if opts.SMSNotify {
		// Template tokens (e.g. parcel number) are the carrier's to
		// substitute, not ours.
		services = append(services, ParcelService{
			Code:         "SM1",
			SM1Parameter: &ValueParameter{Value: shipment.Phone() + "|" + opts.SMSTemplate},
		})
	}

	if opts.SMSPreadvice {
		services = append(services, ParcelService{
			Code:         "SM2",
			SM2Parameter: &ValueParameter{Value: shipment.Phone()},
		})
	}

	if !pickupPoint && opts.AddresseeOnly {
		services = append(services, ParcelService{
			Code:         "AOS",
			AOSParameter: &ValueParameter{Value: shipment.RecipientName()},
		})
	}

	if opts.Insurance {
		domestic := originCountry == shipment.DestinationCountry()
		if insuranceBands.Eligible(originCountry, domestic, shipment.TotalValue) {
			services = append(services, ParcelService{
				Code:         "INS",
				INSParameter: &DecimalParameter{Value: shipment.TotalValue},
			})
		}
	}

	return services, nil
}
