package metrics

// Pre-defined metrics for the transaction parser. All metrics live in
// DefaultRegistry so they are globally accessible without passing a
// registry around.

var (
	// ---- Parser outcome metrics ----

	// TxFinished counts transactions that reached StatusFinished.
	TxFinished = DefaultRegistry.Counter("parser.finished_total")
	// TxFault counts transactions that reached StatusFault.
	TxFault = DefaultRegistry.Counter("parser.fault_total")
	// TxSuspended counts custom-processor suspensions (e.g. a raw-data
	// field paused for host-side display) summed across all resumptions.
	TxSuspended = DefaultRegistry.Counter("parser.suspended_total")
	// ParseLatency records end-to-end ProcessTx+ContinueTx wall time in
	// microseconds, from the first fragment to a terminal status.
	ParseLatency = DefaultRegistry.Histogram("parser.latency_us")

	// ---- Stream metrics ----

	// FragmentsFed counts ProcessTx/ContinueTx calls across all contexts.
	FragmentsFed = DefaultRegistry.Counter("parser.fragments_fed_total")
	// BytesHashed counts bytes fed into a context's running Keccak state.
	BytesHashed = DefaultRegistry.Counter("parser.bytes_hashed_total")

	// ---- Token recognition metrics ----

	// TokenProvisioned counts DATA fields recognized as a known ERC-20
	// transfer() call.
	TokenProvisioned = DefaultRegistry.Counter("parser.token_provisioned_total")
	// TokenUnknownFeeCurrency counts transactions rejected because their
	// feeCurrency address did not match any configured token.
	TokenUnknownFeeCurrency = DefaultRegistry.Counter("parser.token_unknown_fee_currency_total")

	// ---- Policy metrics ----

	// DataFieldForbidden counts transactions rejected because a non-empty
	// DATA field arrived while host policy disallows it.
	DataFieldForbidden = DefaultRegistry.Counter("parser.data_forbidden_total")
)
