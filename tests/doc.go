// Package tests holds cross-package test helpers: service mocks, fixture
// builders and the PostgreSQL integration suite (build tag integration).
package tests
