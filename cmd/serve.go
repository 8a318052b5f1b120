package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/jsonrpc-go/pkg/errors"
	"github.com/theapemachine/jsonrpc-go/pkg/jsonrpc"
	"github.com/theapemachine/jsonrpc-go/pkg/service"
)

var (
	portFlag int
	hostFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo calculator over JSON-RPC 2.0",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			host := hostFlag
			if host == "" {
				host = viper.GetString("server.host")
			}

			port := portFlag
			if port == 0 {
				port = viper.GetInt("server.port")
			}

			srv := service.NewRPCService("jsonrpc-go demo", calculatorHandler())
			return srv.Start(fmt.Sprintf("%s:%d", host, port))
		},
	}
)

/*
calculatorHandler implements the demo methods. It is deliberately tiny:
the point is exercising envelopes, ids, and the error taxonomy.
*/
func calculatorHandler() jsonrpc.Handler {
	return jsonrpc.HandlerFunc(func(ctx context.Context, req *jsonrpc.RawRequest) (any, *errors.RpcError) {
		var operands []int64

		if req.Params != nil {
			if err := json.Unmarshal(*req.Params, &operands); err != nil {
				return nil, errors.ErrInvalidParams.WithMessagef("expected an array of integers: %v", err)
			}
		}

		switch req.Method {
		case "subtract":
			if len(operands) != 2 {
				return nil, errors.ErrInvalidParams.WithMessagef("subtract takes exactly 2 params, got %d", len(operands))
			}

			return operands[0] - operands[1], nil

		case "sum":
			var total int64

			for _, n := range operands {
				total += n
			}

			return total, nil

		default:
			return nil, errors.ErrMethodNotFound
		}
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "Port to serve on")
	serveCmd.Flags().StringVarP(&hostFlag, "host", "H", "", "Host address to bind to")
}

var longServe = `
Runs a small calculator service ("subtract", "sum") behind the JSON-RPC 2.0
server glue. Useful as a live target for the call subcommand.
`
