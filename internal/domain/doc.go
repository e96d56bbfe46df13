// Package domain contains the core domain model for attendpay.
//
// The domain is persistence-agnostic: it does not depend on the filesystem, the CLI or any
// serialization library beyond encoding/json struct tags. Infra/adapters map into/from these types.
package domain
