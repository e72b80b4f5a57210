package modkit

import "reviewharvest/internal/modkit/module"

// Module is the common surface for API modules, see module.Module
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module
