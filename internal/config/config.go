// Package config loads the static inputs of a run: the registered-seller
// profile and the store credentials. Nothing in here is global; both are
// plain values handed to the components that need them.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adukale/gst-shopify/internal/model"
)

// DefaultSellerPath is the conventional seller profile location.
const DefaultSellerPath = "config/seller_details.json"

// Credentials identify one store and its Admin API token.
type Credentials struct {
	StoreDomain string
	AccessToken string
}

// Valid reports whether both fields are present.
func (c Credentials) Valid() bool {
	return c.StoreDomain != "" && c.AccessToken != ""
}

// CredentialsFromEnv reads SHOPIFY_STORE and API_TOKEN. Callers decide
// whether an empty result is fatal.
func CredentialsFromEnv() Credentials {
	return Credentials{
		StoreDomain: os.Getenv("SHOPIFY_STORE"),
		AccessToken: os.Getenv("API_TOKEN"),
	}
}

// LoadSellerProfile reads the seller block from a JSON file. The file
// matches the document's SellerDtls schema exactly and passes through
// untransformed.
func LoadSellerProfile(path string) (model.SellerProfile, error) {
	var profile model.SellerProfile

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("seller profile %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("seller profile %s: %w", path, err)
	}
	if profile.Gstin == "" {
		return profile, fmt.Errorf("seller profile %s: Gstin missing", path)
	}
	return profile, nil
}
