// Package domain contains the core business entities and value objects of
// the analysis service: the parameters a file analysis is requested with
// and the structured summary it produces. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
