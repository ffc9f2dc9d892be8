package models

import (
	"database/sql/driver"
	"time"
)

// SettingsName is the fixed key of the singleton settings document
const SettingsName = "survey"

// SurveySettings is the full typed settings document. Pointer-valued
// sub-structs and fields distinguish "absent" from "zero" so that
// ApplyDefaults can fill gaps without touching stored data.
type SurveySettings struct {
	StartDate      time.Time           `json:"startDate"`
	EndDate        time.Time           `json:"endDate"`
	IsActive       bool                `json:"isActive"`
	BannerImageURL string              `json:"bannerImageUrl"`
	Appearance     *Appearance         `json:"appearance,omitempty"`
	ResponseMgmt   *ResponseManagement `json:"responseManagement,omitempty"`
	Notifications  *Notifications      `json:"notifications,omitempty"`
	Security       *Security           `json:"security,omitempty"`
	Integrations   *Integrations       `json:"integrations,omitempty"`
	Defaults       *FormDefaults       `json:"defaults,omitempty"`
}

type Appearance struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoURL        string `json:"logoUrl"`
	CustomCSS      string `json:"customCss"`
}

// ResponseManagement controls retention. Zero means unlimited/indefinite.
type ResponseManagement struct {
	DataRetentionDays    int `json:"dataRetentionDays"`
	AutoArchiveAfterDays int `json:"autoArchiveAfterDays"`
	ResponseLimit        int `json:"responseLimit"`
}

type Notifications struct {
	EmailNotifications bool   `json:"emailNotifications"`
	NotificationEmail  string `json:"notificationEmail"`
	AlertThreshold     *int   `json:"alertThreshold,omitempty"`
	DailyDigest        bool   `json:"dailyDigest"`
}

type Security struct {
	EnableRecaptcha     bool     `json:"enableRecaptcha"`
	AllowedIPRanges     []string `json:"allowedIpRanges"`
	RequireVerification bool     `json:"requireVerification"`
}

type Integrations struct {
	APIKeys      map[string]string `json:"apiKeys"`
	WebhookURL   string            `json:"webhookUrl"`
	ExportFormat string            `json:"exportFormat"`
}

type FormDefaults struct {
	DefaultExpiryDays *int   `json:"defaultExpiryDays,omitempty"`
	FooterText        string `json:"footerText"`
	Disclaimer        string `json:"disclaimer"`
}

func (s SurveySettings) Value() (driver.Value, error) { return jsonValue(s) }
func (s *SurveySettings) Scan(src interface{}) error  { return jsonScan(s, src) }

// SettingsDocument is the persisted singleton row holding the settings
// document as a JSON column. Full-document replace on write.
type SettingsDocument struct {
	Name      string         `json:"name" gorm:"primaryKey;size:50"`
	Data      SurveySettings `json:"data" gorm:"type:text;not null"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the SettingsDocument model
func (SettingsDocument) TableName() string {
	return "settings"
}

func intPtr(v int) *int { return &v }

// DefaultSettings returns the hardcoded defaults used to fill absent fields
func DefaultSettings() SurveySettings {
	now := time.Now()
	return SurveySettings{
		StartDate:      now,
		EndDate:        now.AddDate(0, 1, 0),
		IsActive:       true,
		BannerImageURL: "",
		Appearance: &Appearance{
			PrimaryColor:   "#6366F1",
			SecondaryColor: "#8B5CF6",
		},
		ResponseMgmt: &ResponseManagement{
			DataRetentionDays:    0,
			AutoArchiveAfterDays: 90,
			ResponseLimit:        0,
		},
		Notifications: &Notifications{
			AlertThreshold: intPtr(10),
		},
		Security: &Security{
			AllowedIPRanges: []string{},
		},
		Integrations: &Integrations{
			APIKeys:      map[string]string{},
			ExportFormat: "csv",
		},
		Defaults: &FormDefaults{
			DefaultExpiryDays: intPtr(30),
			FooterText:        "© 2023 Inan Awards. All rights reserved.",
			Disclaimer:        "Your privacy is important to us. All responses are confidential and will be used only for the intended purpose.",
		},
	}
}

// ApplyDefaults fills any absent nested field of a partial settings document
// from the hardcoded defaults. Pure: the input is not mutated and the stored
// document is never written back.
func ApplyDefaults(partial SurveySettings) SurveySettings {
	defaults := DefaultSettings()
	full := partial

	if full.StartDate.IsZero() {
		full.StartDate = defaults.StartDate
	}
	if full.EndDate.IsZero() {
		full.EndDate = defaults.EndDate
	}

	if partial.Appearance == nil {
		full.Appearance = defaults.Appearance
	} else {
		a := *partial.Appearance
		if a.PrimaryColor == "" {
			a.PrimaryColor = defaults.Appearance.PrimaryColor
		}
		if a.SecondaryColor == "" {
			a.SecondaryColor = defaults.Appearance.SecondaryColor
		}
		full.Appearance = &a
	}

	if partial.ResponseMgmt == nil {
		full.ResponseMgmt = defaults.ResponseMgmt
	} else {
		r := *partial.ResponseMgmt
		full.ResponseMgmt = &r
	}

	if partial.Notifications == nil {
		full.Notifications = defaults.Notifications
	} else {
		n := *partial.Notifications
		if n.AlertThreshold == nil {
			n.AlertThreshold = defaults.Notifications.AlertThreshold
		}
		full.Notifications = &n
	}

	if partial.Security == nil {
		full.Security = defaults.Security
	} else {
		s := *partial.Security
		if s.AllowedIPRanges == nil {
			s.AllowedIPRanges = []string{}
		}
		full.Security = &s
	}

	if partial.Integrations == nil {
		full.Integrations = defaults.Integrations
	} else {
		i := *partial.Integrations
		if i.APIKeys == nil {
			i.APIKeys = map[string]string{}
		}
		if i.ExportFormat == "" {
			i.ExportFormat = defaults.Integrations.ExportFormat
		}
		full.Integrations = &i
	}

	if partial.Defaults == nil {
		full.Defaults = defaults.Defaults
	} else {
		d := *partial.Defaults
		if d.DefaultExpiryDays == nil {
			d.DefaultExpiryDays = defaults.Defaults.DefaultExpiryDays
		}
		if d.FooterText == "" {
			d.FooterText = defaults.Defaults.FooterText
		}
		if d.Disclaimer == "" {
			d.Disclaimer = defaults.Defaults.Disclaimer
		}
		full.Defaults = &d
	}

	return full
}
