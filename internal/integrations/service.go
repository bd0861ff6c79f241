package integrations

// Service bundles the outbound integrations behind a single constructor so
// callers can wire them from configuration in one place.
type Service struct {
	Weather *Weather
	Maps    *Maps
	Mailer  *Mailer
}

// NewService builds all integration clients. Empty credentials are fine;
// the corresponding calls will report what is missing.
func NewService(weatherKey, mapsKey, smtpHost string, smtpPort int, emailUser, emailPass string) *Service {
	return &Service{
		Weather: NewWeather(weatherKey),
		Maps:    NewMaps(mapsKey),
		Mailer:  NewMailer(smtpHost, smtpPort, emailUser, emailPass),
	}
}
