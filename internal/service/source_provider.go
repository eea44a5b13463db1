package service

import "time"

// VendorTimeLayout is the timestamp format used throughout vendor XML documents.
const VendorTimeLayout = "2006-01-02T15:04:05.000-07:00"

type SourceProvider struct {
	ID        int
	Name      string
	CreatedOn time.Time
	UpdatedOn time.Time
}

var sourceProviderEpoch = time.Date(2012, time.September, 19, 12, 43, 0, 0, time.UTC)

var sourceProviderNames = []string{
	"PANDORA",
	"INTERNET_RADIO",
	"OFF",
	"LOCAL",
	"AIRPLAY",
	"CURRATED_RADIO",
	"STORED_MUSIC",
	"SLAVE_SOURCE",
	"AUX",
	"RECOMMENDED_INTERNET_RADIO",
	"LOCAL_INTERNET_RADIO",
	"GLOBAL_INTERNET_RADIO",
	"HELLO",
	"DEEZER",
	"SPOTIFY",
	"IHEART",
	"SIRIUSXM",
	"GOOGLE_PLAY_MUSIC",
	"QQMUSIC",
	"AMAZON",
	"LOCAL_MUSIC",
	"WBMX",
	"SOUNDCLOUD",
	"TIDAL",
	"TUNEIN",
	"QPLAY",
	"JUKEBOX",
	"BBC",
	"DARFM",
	"7DIGITAL",
	"SAAVN",
	"RDIO",
	"PHONE_MUSIC",
	"ALEXA",
	"RADIOPLAYER",
	"RADIO.COM",
	"RADIO_BROWSER",
}

// SourceProviders returns the fixed provider catalogue. Ids start at 1 in list order.
func SourceProviders() []SourceProvider {
	out := make([]SourceProvider, len(sourceProviderNames))
	for i, name := range sourceProviderNames {
		out[i] = SourceProvider{
			ID:        i + 1,
			Name:      name,
			CreatedOn: sourceProviderEpoch,
			UpdatedOn: sourceProviderEpoch,
		}
	}
	return out
}
