package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type AccountConfig struct {
	Name         string `mapstructure:"name"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	ClientNumber int64  `mapstructure:"client_number"`
	CountryCode  string `mapstructure:"country_code"`
	Environment  string `mapstructure:"environment"`
}

type SenderConfig struct {
	Name           string `mapstructure:"name"`
	Street         string `mapstructure:"street"`
	HouseNumber    string `mapstructure:"house_number"`
	City           string `mapstructure:"city"`
	ZipCode        string `mapstructure:"zip_code"`
	CountryIsoCode string `mapstructure:"country_iso_code"`
	ContactName    string `mapstructure:"contact_name"`
	ContactPhone   string `mapstructure:"contact_phone"`
	ContactEmail   string `mapstructure:"contact_email"`
}

type ServiceDefaultsConfig struct {
	Guarantee24H        bool   `mapstructure:"guarantee_24h"`
	ExpressTime         string `mapstructure:"express_time"`
	ContactOnDelivery   bool   `mapstructure:"contact_on_delivery"`
	FlexibleDelivery    bool   `mapstructure:"flexible_delivery"`
	FlexibleDeliverySMS bool   `mapstructure:"flexible_delivery_sms"`
	SMSNotify           bool   `mapstructure:"sms_notify"`
	SMSTemplate         string `mapstructure:"sms_template"`
	SMSPreadvice        bool   `mapstructure:"sms_preadvice"`
	AddresseeOnly       bool   `mapstructure:"addressee_only"`
	Insurance           bool   `mapstructure:"insurance"`
}

// ExpressRuleConfig is one row of the express eligibility table:
// which time-bound express options the carrier offers for a
// destination postcode, per origin country.
type ExpressRuleConfig struct {
	Country string   `mapstructure:"country"`
	ZipCode string   `mapstructure:"zip_code"`
	Offered []string `mapstructure:"offered"`
}

// InsuranceBandConfig is one row of the insurance value bounds table.
// Export marks the cross-border band for the country.
type InsuranceBandConfig struct {
	Country string  `mapstructure:"country"`
	Export  bool    `mapstructure:"export"`
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
}

type Config struct {
	Port        string
	AdminSecret string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	ActiveAccount string
	Accounts      []AccountConfig
	Sender        SenderConfig
	Defaults      ServiceDefaultsConfig

	ReferenceTemplate        string
	ContentTemplate          string
	PrintPosition            int
	PrinterType              string
	SenderIdentityCardNumber string

	CarrierBaseURL        string
	CarrierTimeoutSeconds int

	ExpressRules   []ExpressRuleConfig
	InsuranceBands []InsuranceBandConfig

	LabelStoragePath string
}

func LoadConfig() Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	_ = v.ReadInConfig()

	cfg := Config{
		Port:        v.GetString("server.port"),
		AdminSecret: v.GetString("server.admin_secret"),

		DBUser: v.GetString("database.user"),
		DBPass: v.GetString("database.pass"),
		DBHost: v.GetString("database.host"),
		DBName: v.GetString("database.name"),

		ActiveAccount: v.GetString("gls.active_account"),

		ReferenceTemplate:        v.GetString("gls.reference_template"),
		ContentTemplate:          v.GetString("gls.content_template"),
		PrintPosition:            v.GetInt("gls.print_position"),
		PrinterType:              v.GetString("gls.printer_type"),
		SenderIdentityCardNumber: v.GetString("gls.sender_identity_card_number"),

		CarrierBaseURL:        v.GetString("gls.base_url"),
		CarrierTimeoutSeconds: v.GetInt("gls.timeout_seconds"),

		LabelStoragePath: v.GetString("labels.storage_path"),
	}

	if err := v.UnmarshalKey("gls.accounts", &cfg.Accounts); err != nil {
		log.Println("failed to read gls.accounts:", err)
	}
	if err := v.UnmarshalKey("gls.sender", &cfg.Sender); err != nil {
		log.Println("failed to read gls.sender:", err)
	}
	if err := v.UnmarshalKey("gls.service_defaults", &cfg.Defaults); err != nil {
		log.Println("failed to read gls.service_defaults:", err)
	}
	if err := v.UnmarshalKey("gls.express_rules", &cfg.ExpressRules); err != nil {
		log.Println("failed to read gls.express_rules:", err)
	}
	if err := v.UnmarshalKey("gls.insurance_bands", &cfg.InsuranceBands); err != nil {
		log.Println("failed to read gls.insurance_bands:", err)
	}

	return cfg
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBName,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "50060")
	v.SetDefault("gls.reference_template", "Order:{order_id}")
	v.SetDefault("gls.content_template", "")
	v.SetDefault("gls.print_position", 1)
	v.SetDefault("gls.printer_type", "A4_2x2")
	v.SetDefault("gls.timeout_seconds", 60)
	v.SetDefault("labels.storage_path", "files/labels")
}
