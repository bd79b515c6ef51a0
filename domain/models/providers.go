package models

import "fmt"

// ProviderInfo - display metadata for an image source platform
type ProviderInfo struct {
	Label   string
	HomeURL string
}

// providerDirectory maps ImageRef.SourcePlatform to attribution metadata.
// Built once at init, read-only afterwards.
var providerDirectory = map[string]ProviderInfo{
	"unsplash":  {Label: "Unsplash", HomeURL: "https://unsplash.com"},
	"pexels":    {Label: "Pexels", HomeURL: "https://www.pexels.com"},
	"pixabay":   {Label: "Pixabay", HomeURL: "https://pixabay.com"},
	"openai":    {Label: "DALL·E", HomeURL: "https://openai.com"},
	"stability": {Label: "Stable Diffusion", HomeURL: "https://stability.ai"},
	"flux":      {Label: "FLUX", HomeURL: "https://blackforestlabs.ai"},
}

// ProviderFor looks up attribution metadata for a source platform,
// falling back to the raw platform name for unknown providers.
func ProviderFor(platform string) ProviderInfo {
	if info, ok := providerDirectory[platform]; ok {
		return info
	}
	return ProviderInfo{Label: platform}
}

// Attribution builds the caption string attached to every uploaded image.
func (r ImageRef) Attribution() string {
	provider := ProviderFor(r.SourcePlatform)
	switch {
	case r.Author != "" && provider.Label != "":
		return fmt.Sprintf("Image: %s / %s", r.Author, provider.Label)
	case r.Author != "":
		return fmt.Sprintf("Image: %s", r.Author)
	case provider.Label != "":
		return fmt.Sprintf("Image: %s", provider.Label)
	default:
		return ""
	}
}
