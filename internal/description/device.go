package description

import "fmt"

// Device is a resolved UPnP device: the fields of the <device> element
// in its description document plus the identity carried over from the
// SSDP notification that located it. The xml tags are the binding table
// between document tag names and fields.
type Device struct {
	DeviceType       string `xml:"deviceType" json:"device_type"`
	FriendlyName     string `xml:"friendlyName" json:"friendly_name"`
	UDN              string `xml:"UDN" json:"udn"`
	Manufacturer     string `xml:"manufacturer" json:"manufacturer,omitempty"`
	ManufacturerURL  string `xml:"manufacturerURL" json:"manufacturer_url,omitempty"`
	ModelDescription string `xml:"modelDescription" json:"model_description,omitempty"`
	ModelName        string `xml:"modelName" json:"model_name,omitempty"`
	ModelNumber      string `xml:"modelNumber" json:"model_number,omitempty"`
	SerialNumber     string `xml:"serialNumber" json:"serial_number,omitempty"`
	PresentationURL  string `xml:"presentationURL" json:"presentation_url,omitempty"`

	// BaseURL is always populated: the document's URLBase element when
	// present, otherwise the notification's location URL.
	BaseURL string `xml:"-" json:"base_url"`

	// Location is the description document URL from the notification.
	Location string `xml:"-" json:"location"`

	// USN is the Unique Service Name from the notification.
	USN string `xml:"-" json:"usn"`
}

// String returns a human-readable one-line summary of the device
func (d *Device) String() string {
	name := d.FriendlyName
	if name == "" {
		name = d.UDN
	}
	return fmt.Sprintf("%s (%s) at %s", name, d.DeviceType, d.BaseURL)
}
