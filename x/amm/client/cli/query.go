package cli

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/zephyr-dex/zephyr/x/amm/keeper"
	"github.com/zephyr-dex/zephyr/x/amm/types"
	"github.com/zephyr-dex/zephyr/x/shared/nonce"
)

// GetQueryCmd returns the query commands for the amm module
func GetQueryCmd() *cobra.Command {
	ammQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "AMM query subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	ammQueryCmd.AddCommand(
		CmdQueryPool(),
		CmdQueryLPBalance(),
		CmdQueryNonceUsed(),
		CmdQueryQuote(),
	)

	return ammQueryCmd
}

func queryPool(clientCtx client.Context, assetA, assetB string) (types.Pool, error) {
	idBz, _, err := clientCtx.QueryStore(keeper.PoolByAssetsKey(assetA, assetB), types.StoreKey)
	if err != nil {
		return types.Pool{}, err
	}
	if len(idBz) != 8 {
		return types.Pool{}, fmt.Errorf("no pool for pair (%s, %s)", assetA, assetB)
	}
	poolBz, _, err := clientCtx.QueryStore(keeper.PoolKey(binary.BigEndian.Uint64(idBz)), types.StoreKey)
	if err != nil {
		return types.Pool{}, err
	}
	var pool types.Pool
	if err := pool.Unmarshal(poolBz); err != nil {
		return types.Pool{}, err
	}
	return pool, nil
}

// CmdQueryPool returns a CLI command handler for showing a pool
func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [asset-a] [asset-b]",
		Short: "Show the pool for an ordered asset pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			pool, err := queryPool(clientCtx, args[0], args[1])
			if err != nil {
				return err
			}
			return clientCtx.PrintString(fmt.Sprintf(
				"id: %d\nasset_a: %s\nasset_b: %s\nreserve_a: %s\nreserve_b: %s\ntotal_shares: %s\n",
				pool.Id, pool.AssetA, pool.AssetB, pool.ReserveA, pool.ReserveB, pool.TotalShares,
			))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryLPBalance returns a CLI command handler for showing an account's
// share balance
func CmdQueryLPBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lp-balance [address]",
		Short: "Show an account's share balance across all pools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			bz, _, err := clientCtx.QueryStore(keeper.LPBalanceKey(args[0]), types.StoreKey)
			if err != nil {
				return err
			}
			balance := math.ZeroInt()
			if len(bz) > 0 {
				if err := balance.Unmarshal(bz); err != nil {
					return err
				}
			}
			return clientCtx.PrintString(fmt.Sprintf("shares: %s\n", balance))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryNonceUsed returns a CLI command handler for checking whether an
// account consumed its delegated-swap authorization with a specific nonce
func CmdQueryNonceUsed() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nonce-used [address] [nonce]",
		Short: "Check whether an account spent its delegated-swap authorization with the given nonce",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			queried, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid nonce %q: %w", args[1], err)
			}

			key := []byte(fmt.Sprintf("%s/%s", nonce.RecordPrefix, args[0]))
			bz, _, err := clientCtx.QueryStore(key, types.StoreKey)
			if err != nil {
				return err
			}
			if len(bz) == 8 {
				stored := binary.BigEndian.Uint64(bz)
				return clientCtx.PrintString(fmt.Sprintf("used: %t\nstored_nonce: %d\n", stored == queried, stored))
			}
			return clientCtx.PrintString("used: false\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryQuote returns a CLI command handler for quoting a swap without
// executing it
func CmdQueryQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [asset-in] [amount-in] [asset-out]",
		Short: "Quote a swap against current reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			amountIn, err := parsePositiveInt(args[1], "amount-in")
			if err != nil {
				return err
			}
			pool, err := queryPool(clientCtx, args[0], args[2])
			if err != nil {
				return err
			}
			amountOut, err := keeper.CalculateSwapOutput(amountIn, pool.ReserveA, pool.ReserveB)
			if err != nil {
				return err
			}
			return clientCtx.PrintString(fmt.Sprintf("amount_out: %s\n", amountOut))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
