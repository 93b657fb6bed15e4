// Package integration defines the external platform sync domain: the
// closed platform enum, per-tenant platform configurations, the adapter
// capability contract each vendor implements, the normalizer that folds
// heterogeneous vendor payloads into canonical enrollment and progress
// records, and the repository ports the sync engine persists through.
package integration
