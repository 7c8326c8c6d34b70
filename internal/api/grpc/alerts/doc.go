// Package alerts implements the gRPC transport for the medical alert engine.
//
// The service medalert.v1.AlertService carries google.protobuf.Struct
// documents in the snapshot schema, so the descriptor is declared by hand
// and no generated code is needed. Server adapts the transport to a
// business-service interface; NewAlertServiceClient is the matching client.
package alerts
