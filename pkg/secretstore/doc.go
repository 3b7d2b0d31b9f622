// Package secretstore defines the platform-side representation of a secret
// that cry moves between the vault and a container platform.
//
// A Secret is a name plus a flat string mapping. The vault produces secrets
// either directly (accounts of the ose_secret type) or by converting a
// credential account; the platform client renders them as v1/Secret
// manifests.
//
// Names must be valid Kubernetes object names (RFC 1123 subdomains), since
// both oc and kubectl reject anything else.
package secretstore
