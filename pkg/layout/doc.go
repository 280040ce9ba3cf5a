// Package layout resolves the size and position of every widget in a tree.
//
// Layout runs in two passes over each subtree. During measure a child reports
// its intrinsic size under the [Limits] offered by its parent. During arrange
// the parent hands each child a concrete size and the child returns a [Node]
// describing itself and its children. Nodes are immutable values; positions
// are relative to the parent node.
//
// Sizing along each axis is declared with a [Length]: [Fixed], [Fill],
// [FillPortion] or [Shrink]. When space runs out, children are clamped to
// zero rather than given negative sizes; overflowing content is truncated by
// the renderer's clip.
package layout
