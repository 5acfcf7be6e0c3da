// Package modkit wires API modules: shared deps, build options and mounting
package modkit

import "maintkpi/internal/modkit/module"

// Module is the surface api.Mount works with
type Module = module.Module

// Builder is the constructor shape modules export as New
type Builder func(Deps, ...Option) Module
