// Package writers turns computed results into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (text report, JSON/JSONL, TSV).
//   - core/melting stays domain-only; the batch pool stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
