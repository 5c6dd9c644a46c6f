// File: utils/constants.go
package utils

import "time"

// WizardSessionPrefix is the prefix used for Redis registration-wizard keys.
const WizardSessionPrefix = "wizard:"

// WizardSessionTTL is the time-to-live for registration-wizard sessions.
const WizardSessionTTL = 30 * time.Minute

// ConsentCatalogKey is the Redis key holding the cached consent catalog.
const ConsentCatalogKey = "consent:catalog"

// ConsentCatalogTTL bounds staleness of the cached consent catalog.
const ConsentCatalogTTL = time.Hour

// PartnerKeyCachePrefix is the prefix for cached partner-key list views.
const PartnerKeyCachePrefix = "partnerKeys:"

// PartnerKeyCacheTTL is deliberately short: the console is a read-through
// view over upstream state and mutations invalidate it anyway.
const PartnerKeyCacheTTL = 30 * time.Second

// DoctorVerifiedDisplayDelay is how long the browser should show the
// "doctor verified" success message before moving to email verification.
// UX pacing, not a network wait.
const DoctorVerifiedDisplayDelay = 1500 * time.Millisecond

// SuccessRedirectDelay is how long the browser should show the final
// registration success screen before the completion callback fires.
const SuccessRedirectDelay = 3 * time.Second

// StreamDrainInterval is the cadence of the typewriter drain loop.
const StreamDrainInterval = 25 * time.Millisecond

// StreamCharsPerTick is the per-tick character budget of the drain loop.
// Together with StreamDrainInterval this yields ~160 chars/second.
const StreamCharsPerTick = 4
