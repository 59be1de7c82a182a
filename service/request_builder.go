package service

import (
	"strings"

	"gls-plugin/config"
)

// Destination country for which the carrier demands the sender's
// identity document number on the parcel.
const identityCardCountry = "RS"

const (
	defaultPrintPosition = 1
	defaultPrinterType   = "A4_2x2"
)

// BuildOptions are the caller-supplied per-call overrides for a single
// shipment build. Batch builds never accept these; they read only the
// preferences saved on each shipment.
type BuildOptions struct {
	Count         int
	PrintPosition int
	CODReference  string
	Services      *ServiceOverrides
}

// Builder assembles complete PrintLabels payloads from shipment data,
// the active account, the sender address and the eligibility rules.
// All inputs are explicit values; there is no ambient global state.
type Builder struct {
	Account        Account
	Sender         Address
	Defaults       ServiceOptions
	ExpressRules   ExpressRuleTable
	InsuranceBands InsuranceBandTable

	ReferenceTemplate string
	ContentTemplate   string

	PrintPosition            int
	PrinterType              string
	SenderIdentityCardNumber string
}

func NewBuilder(account Account, cfg config.Config) *Builder {
	bands := cfg.InsuranceBands
	if len(bands) == 0 {
		bands = DefaultInsuranceBands()
	}
	return &Builder{
		Account:                  account,
		Sender:                   senderAddress(cfg.Sender),
		Defaults:                 OptionsFromConfig(cfg.Defaults),
		ExpressRules:             NewExpressRuleTable(cfg.ExpressRules),
		InsuranceBands:           NewInsuranceBandTable(bands),
		ReferenceTemplate:        cfg.ReferenceTemplate,
		ContentTemplate:          cfg.ContentTemplate,
		PrintPosition:            cfg.PrintPosition,
		PrinterType:              cfg.PrinterType,
		SenderIdentityCardNumber: cfg.SenderIdentityCardNumber,
	}
}

func senderAddress(sender config.SenderConfig) Address {
	return Address{
		Name:           sender.Name,
		Street:         sender.Street,
		HouseNumber:    sender.HouseNumber,
		City:           sender.City,
		ZipCode:        sender.ZipCode,
		CountryIsoCode: strings.ToUpper(strings.TrimSpace(sender.CountryIsoCode)),
		ContactName:    sender.ContactName,
		ContactPhone:   sender.ContactPhone,
		ContactEmail:   sender.ContactEmail,
	}
}

// BuildSingle assembles the payload for one shipment. Credentials are
// not attached here; the client adds them immediately before sending.
func (b *Builder) BuildSingle(shipment Shipment, opts *BuildOptions) (*PrintLabelsRequest, error) {
	count := 0
	codReference := ""
	var overrides *ServiceOverrides
	printPosition := 0
	if opts != nil {
		count = opts.Count
		codReference = strings.TrimSpace(opts.CODReference)
		overrides = opts.Services
		printPosition = opts.PrintPosition
	}
	if overrides == nil {
		overrides = shipment.SavedOverrides
	}

	parcel, err := b.buildParcel(shipment, overrides, count, codReference)
	if err != nil {
		return nil, err
	}

	if printPosition <= 0 {
		printPosition = shipment.SavedPrintPosition
	}

	return &PrintLabelsRequest{
		ParcelList:      []Parcel{parcel},
		PrintPosition:   b.resolvePrintPosition(printPosition),
		TypeOfPrinter:   b.resolvePrinterType(shipment.SavedPrinterType),
		ShowPrintDialog: false,
	}, nil
}

// BuildBatch assembles one payload carrying every shipment. Each entry
// repeats the single-shipment assembly with that shipment's saved
// overrides. Divergent saved print preferences are consolidated to one
// batch-wide value; that is policy, never an error.
func (b *Builder) BuildBatch(shipments []Shipment) (*PrintLabelsRequest, error) {
	parcels := make([]Parcel, 0, len(shipments))
	for _, shipment := range shipments {
		parcel, err := b.buildParcel(shipment, shipment.SavedOverrides, 0, "")
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, parcel)
	}

	positions := make([]int, 0, len(shipments))
	printers := make([]string, 0, len(shipments))
	for _, shipment := range shipments {
		positions = append(positions, shipment.SavedPrintPosition)
		printers = append(printers, shipment.SavedPrinterType)
	}

	return &PrintLabelsRequest{
		ParcelList:      parcels,
		PrintPosition:   b.resolvePrintPosition(consolidatePrintPositions(positions)),
		TypeOfPrinter:   b.resolvePrinterType(consolidatePrinterTypes(printers)),
		ShowPrintDialog: false,
	}, nil
}

func (b *Builder) buildParcel(shipment Shipment, overrides *ServiceOverrides, count int, codReference string) (Parcel, error) {
	services, err := BuildServiceList(
		shipment,
		b.Account.CountryCode,
		b.Defaults.Resolve(overrides),
		b.ExpressRules,
		b.InsuranceBands,
	)
	if err != nil {
		return Parcel{}, err
	}

	reference := strings.TrimSpace(shipment.ClientReference)
	if reference == "" {
		reference = SubstituteReference(b.ReferenceTemplate, shipment.ID)
	}

	if count <= 0 {
		count = shipment.ParcelCount()
	}

	delivery := shipment.Delivery
	parcel := Parcel{
		ClientNumber:    b.Account.ClientNumber,
		ClientReference: reference,
		Count:           count,
		Content:         SubstituteContent(b.ContentTemplate, shipment),
		PickupAddress:   &b.Sender,
		DeliveryAddress: &delivery,
		ServiceList:     services,
	}

	if shipment.IsCOD() {
		parcel.CODAmount = shipment.TotalValue
		parcel.CODReference = codReference
		if parcel.CODReference == "" {
			parcel.CODReference = strings.TrimSpace(shipment.ID)
		}
	}

	// Required in production use for this destination; here it is
	// included when configured and validation stays with the caller.
	if shipment.DestinationCountry() == identityCardCountry {
		parcel.SenderIdentityCardNumber = strings.TrimSpace(b.SenderIdentityCardNumber)
	}

	return parcel, nil
}

func (b *Builder) resolvePrintPosition(position int) int {
	if position > 0 {
		return position
	}
	if b.PrintPosition > 0 {
		return b.PrintPosition
	}
	return defaultPrintPosition
}

func (b *Builder) resolvePrinterType(printer string) string {
	printer = strings.TrimSpace(printer)
	if printer != "" {
		return printer
	}
	if strings.TrimSpace(b.PrinterType) != "" {
		return strings.TrimSpace(b.PrinterType)
	}
	return defaultPrinterType
}

// consolidatePrintPositions picks the one shared batch value: if every
// shipment with an explicit saved position agrees, that position wins;
// disagreement or no explicit values falls back to zero so the global
// default applies.
func consolidatePrintPositions(positions []int) int {
	agreed := 0
	for _, position := range positions {
		if position <= 0 {
			continue
		}
		if agreed == 0 {
			agreed = position
			continue
		}
		if position != agreed {
			return 0
		}
	}
	return agreed
}

func consolidatePrinterTypes(printers []string) string {
	agreed := ""
	for _, printer := range printers {
		printer = strings.TrimSpace(printer)
		if printer == "" {
			continue
		}
		if agreed == "" {
			agreed = printer
			continue
		}
		if !strings.EqualFold(printer, agreed) {
			return ""
		}
	}
	return agreed
}
