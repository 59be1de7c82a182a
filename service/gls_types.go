package service

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ByteArray marshals as a JSON array of numbers instead of the base64
// string encoding/json uses for []byte. The carrier API transmits both
// the password digest and label binaries in that form.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(int(v)))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = nil
		return nil
	}
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	out := make([]byte, len(values))
	for i, v := range values {
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// ============================
// PrintLabels wire payloads
// ============================

type Address struct {
	Name           string `json:"Name"`
	Street         string `json:"Street"`
	HouseNumber    string `json:"HouseNumber,omitempty"`
	City           string `json:"City"`
	ZipCode        string `json:"ZipCode"`
	CountryIsoCode string `json:"CountryIsoCode"`
	ContactName    string `json:"ContactName,omitempty"`
	ContactPhone   string `json:"ContactPhone,omitempty"`
	ContactEmail   string `json:"ContactEmail,omitempty"`
}

type PSDParameter struct {
	StringValue string `json:"StringValue"`
}

type ValueParameter struct {
	Value string `json:"Value"`
}

type DecimalParameter struct {
	Value float64 `json:"Value"`
}

// ParcelService is one entry of a parcel's ServiceList. Exactly one
// parameter field may be set, and it must match the code: the carrier
// rejects a PSD entry carrying an FDS parameter. Keeping them as typed
// optional fields lets the compiler enforce the shape per code.
type ParcelService struct {
	Code string `json:"Code"`

	PSDParameter *PSDParameter     `json:"PSDParameter,omitempty"`
	CS1Parameter *ValueParameter   `json:"CS1Parameter,omitempty"`
	FDSParameter *ValueParameter   `json:"FDSParameter,omitempty"`
	FSSParameter *ValueParameter   `json:"FSSParameter,omitempty"`
	SM1Parameter *ValueParameter   `json:"SM1Parameter,omitempty"`
	SM2Parameter *ValueParameter   `json:"SM2Parameter,omitempty"`
	AOSParameter *ValueParameter   `json:"AOSParameter,omitempty"`
	INSParameter *DecimalParameter `json:"INSParameter,omitempty"`
}

type Parcel struct {
	ClientNumber             int64           `json:"ClientNumber"`
	ClientReference          string          `json:"ClientReference"`
	Count                    int             `json:"Count"`
	CODAmount                float64         `json:"CODAmount,omitempty"`
	CODReference             string          `json:"CODReference,omitempty"`
	Content                  string          `json:"Content,omitempty"`
	SenderIdentityCardNumber string          `json:"SenderIdentityCardNumber,omitempty"`
	PickupAddress            *Address        `json:"PickupAddress"`
	DeliveryAddress          *Address        `json:"DeliveryAddress"`
	ServiceList              []ParcelService `json:"ServiceList"`
}

type PrintLabelsRequest struct {
	Username        string    `json:"Username"`
	Password        ByteArray `json:"Password"`
	ParcelList      []Parcel  `json:"ParcelList"`
	TypeOfPrinter   string    `json:"TypeOfPrinter"`
	PrintPosition   int       `json:"PrintPosition"`
	ShowPrintDialog bool      `json:"ShowPrintDialog"`
}

type PrintLabelsInfo struct {
	ParcelID        int64  `json:"ParcelId"`
	ParcelNumber    int64  `json:"ParcelNumber"`
	ClientReference string `json:"ClientReference"`
}

type PrintLabelsError struct {
	ErrorCode           int      `json:"ErrorCode"`
	ErrorDescription    string   `json:"ErrorDescription"`
	ClientReferenceList []string `json:"ClientReferenceList,omitempty"`
	ParcelIDList        []int64  `json:"ParcelIdList,omitempty"`
}

type PrintLabelsResponse struct {
	ErrorCode            int                `json:"ErrorCode"`
	ErrorDescription     string             `json:"ErrorDescription,omitempty"`
	Labels               ByteArray          `json:"Labels,omitempty"`
	PrintLabelsInfoList  []PrintLabelsInfo  `json:"PrintLabelsInfoList,omitempty"`
	PrintLabelsErrorList []PrintLabelsError `json:"PrintLabelsErrorList,omitempty"`
}

// ============================
// GetParcelStatuses wire payloads
// ============================

type ParcelStatusRequest struct {
	Username        string    `json:"Username"`
	Password        ByteArray `json:"Password"`
	ParcelNumber    int64     `json:"ParcelNumber"`
	ReturnPOD       bool      `json:"ReturnPOD"`
	LanguageIsoCode string    `json:"LanguageIsoCode,omitempty"`
}

type ParcelStatus struct {
	StatusCode        string `json:"StatusCode"`
	StatusDescription string `json:"StatusDescription"`
	StatusDate        string `json:"StatusDate"`
	DepotCity         string `json:"DepotCity"`
	StatusInfo        string `json:"StatusInfo,omitempty"`
}

type ParcelStatusResponse struct {
	ErrorCode             int                `json:"ErrorCode"`
	ErrorDescription      string             `json:"ErrorDescription,omitempty"`
	ParcelNumber          int64              `json:"ParcelNumber,omitempty"`
	ParcelStatusList      []ParcelStatus     `json:"ParcelStatusList,omitempty"`
	POD                   ByteArray          `json:"POD,omitempty"`
	GetParcelStatusErrors []PrintLabelsError `json:"GetParcelStatusErrors,omitempty"`
}
