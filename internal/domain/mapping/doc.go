// Package mapping contains the Data Mapping bounded context.
// This context converts heterogeneous external records (CRM accounts,
// payment-provider customers, accounting customers, calendar events) into
// normalized internal entities through named, versionable mapping rules.
//
// Key concepts:
//   - MappingRule: Entity bundling ordered field mappings and optional gating
//     conditions, scoped to (provider, source entity, target entity)
//   - FieldMapping: Value object describing one source-path to target-path
//     correspondence with optional transform, requiredness and default
//   - Condition: Value object gating rule applicability against the source record
//   - RuleRegistry: Port for storing and looking up mapping rules
//   - TransformationService: Port for applying rules to source records
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (memory registry, persistence) are in the infrastructure layer
package mapping
