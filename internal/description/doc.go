// Package description resolves SSDP notifications into full device
// records by fetching each notification's XML description document over
// HTTP and binding its device element into a Device.
//
// Resolution is strictly per-device: a notification whose document cannot
// be fetched or parsed is skipped with a classified error and never
// affects the remaining notifications. The BaseURL invariant holds for
// every returned Device: the document's URLBase element when present,
// otherwise the notification's location URL.
package description
