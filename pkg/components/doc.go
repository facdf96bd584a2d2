// Package components models the declarative FastUI component tree served by
// admin endpoints. Components serialise to the JSON wire format the prebuilt
// FastUI renderer consumes: camelCase keys plus a "type" discriminator.
package components
