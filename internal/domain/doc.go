// Package domain contains the core types shared by the store, service and API layers.
package domain
