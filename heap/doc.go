// Package heap implements the hole-aware heap value runtime.
//
// This package contains:
//   - NaN-boxed value representation
//   - Tagged block layout and slot access
//   - Hole-aware allocation from resolved layouts
//   - Write-once destination handles and fill policies
//
// The intended flow: shape.Resolve a constructor expression, Allocate it
// with the values already at hand, thread each returned Destination to
// wherever its sub-value will eventually be computed, and Fill each exactly
// once. From then on the value reads like one constructed all at once.
package heap
