package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/jsonrpc-go/pkg/jsonrpc"
)

var (
	urlFlag    string
	notifyFlag bool
	textIDFlag bool

	callCmd = &cobra.Command{
		Use:   "call <method> [params-json]",
		Short: "Call a JSON-RPC 2.0 method",
		Long:  longCall,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := urlFlag
			if url == "" {
				url = viper.GetString("client.url")
			}

			var params any

			if len(args) == 2 {
				var raw json.RawMessage

				if err := json.Unmarshal([]byte(args[1]), &raw); err != nil {
					return fmt.Errorf("params must be valid JSON: %w", err)
				}

				params = raw
			}

			var options []jsonrpc.ClientOption
			if textIDFlag {
				options = append(options, jsonrpc.WithTextIDs())
			}

			client := jsonrpc.NewClient(url, options...)

			if notifyFlag {
				return client.Notify(cmd.Context(), args[0], params)
			}

			var result json.RawMessage

			if err := client.Call(cmd.Context(), args[0], params, &result); err != nil {
				log.Error("call failed", "method", args[0], "error", err)
				return err
			}

			fmt.Println(string(result))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVarP(&urlFlag, "url", "u", "", "RPC endpoint URL")
	callCmd.Flags().BoolVarP(&notifyFlag, "notify", "n", false, "Send as a notification (no id, no response)")
	callCmd.Flags().BoolVar(&textIDFlag, "text-ids", false, "Correlate with UUID string ids instead of numeric ids")
}

var longCall = `
Sends a single JSON-RPC 2.0 request to an endpoint and prints the raw result.
Params, when given, must be a JSON value, e.g. '[42,23]'.
`
