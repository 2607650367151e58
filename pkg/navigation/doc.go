// Package navigation reconstructs screen topology from a descriptor.
//
// # Flows
//
// [CollectEdges] flattens the descriptor into navigation controllers,
// view controllers, relationships and segues. [BuildFlow] turns that edge
// list into a [Flow]: the screen a navigation controller starts on plus
// every screen reached through an accepted segue kind. A descriptor without
// a resolvable root relationship has no flow; callers fall back to
// per-screen generation.
//
// The accepted segue kinds are a [KindSet]. [DefaultKinds] contains the
// literal "model" where "modal" might be expected. The literal is kept so
// that output does not change silently; [UnacceptedKinds] lets callers
// report segue kinds a run ignored.
//
// # Tabs
//
// [TabEntries] lists the children of every tab bar controller. Tabs that
// point at a navigation controller are resolved to that controller's root
// screen.
package navigation
