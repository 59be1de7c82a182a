package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gls-plugin/config"
)

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func testShipment() Shipment {
	return Shipment{
		ID: "55",
		Delivery: Address{
			Name:           "Ana Horvat",
			Street:         "Ilica",
			HouseNumber:    "10",
			City:           "Zagreb",
			ZipCode:        "10000",
			CountryIsoCode: "HR",
			ContactPhone:   "+385911234567",
		},
		BillingPhone:  "+385919999999",
		BillingEmail:  "ana@example.com",
		CustomerName:  "Ana Horvat",
		TotalValue:    200,
		Currency:      "EUR",
		PaymentMethod: "card",
		DeliveryMode:  DeliveryModeHome,
		Count:         1,
	}
}

func testExpressRules() ExpressRuleTable {
	return NewExpressRuleTable([]config.ExpressRuleConfig{
		{Country: "HR", ZipCode: "10000", Offered: []string{"T09", "T12"}},
		{Country: "HR", ZipCode: "21000", Offered: []string{"T12"}},
	})
}

func testInsuranceBands() InsuranceBandTable {
	return NewInsuranceBandTable(DefaultInsuranceBands())
}

func serviceCodes(services []ParcelService) []string {
	codes := make([]string, 0, len(services))
	for _, svc := range services {
		codes = append(codes, svc.Code)
	}
	return codes
}

func TestBuildServiceList_PickupPointMandatory(t *testing.T) {
	shipment := testShipment()
	shipment.DeliveryMode = DeliveryModePickupPoint
	shipment.PickupPointID = "HR-PS-1234"

	services, err := BuildServiceList(shipment, "HR", ServiceOptions{}, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "PSD", services[0].Code)
	require.NotNil(t, services[0].PSDParameter)
	assert.Equal(t, "HR-PS-1234", services[0].PSDParameter.StringValue)
}

func TestBuildServiceList_PickupPointWithoutIDFails(t *testing.T) {
	shipment := testShipment()
	shipment.DeliveryMode = DeliveryModePickupPoint
	shipment.PickupPointID = ""

	_, err := BuildServiceList(shipment, "HR", ServiceOptions{}, testExpressRules(), testInsuranceBands())
	assert.True(t, errors.Is(err, ErrMissingPickupInfo))
}

func TestBuildServiceList_24HExcludedCountry(t *testing.T) {
	opts := ServiceOptions{Guarantee24H: true}

	shipment := testShipment()
	services, err := BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	assert.Contains(t, serviceCodes(services), "24H")

	shipment.Delivery.CountryIsoCode = "RS"
	services, err = BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	assert.NotContains(t, serviceCodes(services), "24H")
}

func TestBuildServiceList_ExpressRequiresCoveredZip(t *testing.T) {
	opts := ServiceOptions{ExpressTime: ExpressT09}

	shipment := testShipment()
	services, err := BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	assert.Contains(t, serviceCodes(services), "T09")

	// T09 is not offered for 21000; it must be omitted, never swapped
	// for the T12 that zone does offer.
	shipment.Delivery.ZipCode = "21000"
	services, err = BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	assert.NotContains(t, serviceCodes(services), "T09")
	assert.NotContains(t, serviceCodes(services), "T12")
}

func TestBuildServiceList_ExpressSuppressesFlexibleDelivery(t *testing.T) {
	opts := ServiceOptions{
		ExpressTime:         ExpressT09,
		FlexibleDelivery:    true,
		FlexibleDeliverySMS: true,
	}

	services, err := BuildServiceList(testShipment(), "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)

	codes := serviceCodes(services)
	assert.Contains(t, codes, "T09")
	assert.NotContains(t, codes, "FDS")
	assert.NotContains(t, codes, "FSS")
}

func TestBuildServiceList_FlexibleDeliveryWhenExpressNotEligible(t *testing.T) {
	opts := ServiceOptions{
		ExpressTime:         ExpressT09,
		FlexibleDelivery:    true,
		FlexibleDeliverySMS: true,
	}

	shipment := testShipment()
	shipment.Delivery.ZipCode = "99999"

	services, err := BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)

	codes := serviceCodes(services)
	assert.NotContains(t, codes, "T09")
	assert.Contains(t, codes, "FDS")
	assert.Contains(t, codes, "FSS")

	for _, svc := range services {
		switch svc.Code {
		case "FDS":
			require.NotNil(t, svc.FDSParameter)
			assert.Equal(t, "ana@example.com", svc.FDSParameter.Value)
		case "FSS":
			require.NotNil(t, svc.FSSParameter)
			assert.Equal(t, "+385911234567", svc.FSSParameter.Value)
		}
	}
}

func TestBuildServiceList_PickupPointSuppressesHomeDeliveryServices(t *testing.T) {
	opts := ServiceOptions{
		ContactOnDelivery: true,
		FlexibleDelivery:  true,
		AddresseeOnly:     true,
		SMSNotify:         true,
		SMSPreadvice:      true,
		SMSTemplate:       "Your parcel %ParcelNr% is on its way",
	}

	shipment := testShipment()
	shipment.DeliveryMode = DeliveryModePickupPoint
	shipment.PickupPointID = "HR-PS-1"

	services, err := BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)

	codes := serviceCodes(services)
	assert.NotContains(t, codes, "CS1")
	assert.NotContains(t, codes, "FDS")
	assert.NotContains(t, codes, "AOS")
	// SMS services are independent of delivery mode.
	assert.Contains(t, codes, "SM1")
	assert.Contains(t, codes, "SM2")
}

func TestBuildServiceList_SMSTemplateLeftForCarrier(t *testing.T) {
	opts := ServiceOptions{
		SMSNotify:   true,
		SMSTemplate: "Parcel %ParcelNr% arrives today",
	}

	services, err := BuildServiceList(testShipment(), "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	require.Len(t, services, 1)
	require.NotNil(t, services[0].SM1Parameter)
	assert.Equal(t, "+385911234567|Parcel %ParcelNr% arrives today", services[0].SM1Parameter.Value)
}

func TestBuildServiceList_ContactPhonePreferredOverBilling(t *testing.T) {
	opts := ServiceOptions{ContactOnDelivery: true}

	shipment := testShipment()
	services, err := BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	require.NotNil(t, services[0].CS1Parameter)
	assert.Equal(t, "+385911234567", services[0].CS1Parameter.Value)

	shipment.Delivery.ContactPhone = ""
	services, err = BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	assert.Equal(t, "+385919999999", services[0].CS1Parameter.Value)
}

func TestBuildServiceList_InsuranceWithinBand(t *testing.T) {
	opts := ServiceOptions{Insurance: true}

	shipment := testShipment()
	shipment.TotalValue = 200

	services, err := BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "INS", services[0].Code)
	require.NotNil(t, services[0].INSParameter)
	assert.Equal(t, 200.0, services[0].INSParameter.Value)

	shipment.TotalValue = 5000
	services, err = BuildServiceList(shipment, "HR", opts, testExpressRules(), testInsuranceBands())
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestResolve_OverridesWinFieldByField(t *testing.T) {
	defaults := ServiceOptions{
		Guarantee24H:     true,
		FlexibleDelivery: true,
		ExpressTime:      ExpressT12,
	}

	resolved := defaults.Resolve(&ServiceOverrides{
		Guarantee24H: boolPtr(false),
		ExpressTime:  strPtr("t09"),
	})

	assert.False(t, resolved.Guarantee24H)
	assert.Equal(t, "T09", resolved.ExpressTime)
	// Untouched fields keep their defaults.
	assert.True(t, resolved.FlexibleDelivery)
}

func TestResolve_NilOverridesKeepDefaults(t *testing.T) {
	defaults := ServiceOptions{Guarantee24H: true}
	assert.Equal(t, defaults, defaults.Resolve(nil))
}
