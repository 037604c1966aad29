package views

// View keys, one per tool route
const (
	KeyDevJSONFormatter = "devJSONFormatter"
	KeyRegexTester      = "regexTester"
	KeyJSONValidator    = "jsonValidator"
	KeyAPITester        = "apiTester"
	KeyBase64           = "base64"
	KeyCrypto           = "crypto"
	KeyTimeConverter    = "timeConverter"
	KeyJSONConverter    = "jsonConverter"
	KeyTextCompare      = "textCompare"
	KeyQRCode           = "qrcode"
	KeyImageConverter   = "imageConverter"
	KeyImageCompressor  = "imageCompressor"
)

// DefineViews registers all available views
func DefineViews(r *Registry) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	// Developer tools
	must(r.Register(KeyDevJSONFormatter, newJSONFormatterView))
	must(r.Register(KeyRegexTester, newRegexView))
	must(r.Register(KeyJSONValidator, newJSONValidatorView))
	must(r.Register(KeyAPITester, newAPITesterView))
	must(r.Register(KeyBase64, newBase64View))
	must(r.Register(KeyCrypto, newCryptoView))

	// Common tools
	must(r.Register(KeyTimeConverter, newTimeView))
	must(r.Register(KeyJSONConverter, newJSONConverterView))
	must(r.Register(KeyTextCompare, newTextCompareView))
	must(r.Register(KeyQRCode, newQRCodeView))

	// Image tools
	must(r.Register(KeyImageConverter, newImageConverterView))
	must(r.Register(KeyImageCompressor, newImageCompressorView))
}

// DefaultRegistry returns a registry holding every view
func DefaultRegistry() *Registry {
	r := NewRegistry()
	DefineViews(r)
	return r
}
