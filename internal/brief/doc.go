// Package brief assembles intelligence briefings on people and
// companies by running provider lookups as pipeline steps over a shared
// Brief. Steps are independent: one provider failing (missing key, rate
// limit, no data) is recorded on the brief and the rest still run.
package brief
