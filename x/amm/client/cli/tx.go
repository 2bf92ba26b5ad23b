package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/zephyr-dex/zephyr/x/amm/types"
)

// GetTxCmd returns the transaction commands for the amm module
func GetTxCmd() *cobra.Command {
	ammTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "AMM transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	ammTxCmd.AddCommand(
		CmdAddLiquidity(),
		CmdRemoveLiquidity(),
		CmdSwap(),
		CmdMetaSwap(),
	)

	return ammTxCmd
}

func parsePositiveInt(arg, name string) (math.Int, error) {
	v, ok := math.NewIntFromString(arg)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid %s: %s (must be integer)", name, arg)
	}
	if !v.IsPositive() {
		return math.Int{}, fmt.Errorf("%s must be positive", name)
	}
	return v, nil
}

func parseNonNegativeInt(arg, name string) (math.Int, error) {
	v, ok := math.NewIntFromString(arg)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid %s: %s (must be integer)", name, arg)
	}
	if v.IsNegative() {
		return math.Int{}, fmt.Errorf("%s cannot be negative", name)
	}
	return v, nil
}

// CmdAddLiquidity returns a CLI command handler for depositing into a pool
func CmdAddLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [asset-a] [desired-a] [asset-b] [desired-b] [min-a] [min-b]",
		Short: "Deposit both assets of an ordered pair into a pool",
		Long: `Deposit both assets of an ordered pair, creating the pool on first deposit.

Pairs are directional: (atom, usdc) and (usdc, atom) are two independent pools.
On an existing pool the deposit is trimmed to the pool ratio; min-a and min-b
bound the trimmed amounts.

Example:
  $ zephyrd tx amm add-liquidity uatom 1000000 uusdc 4000000 990000 3960000 --from mykey`,
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			assetA, assetB := args[0], args[2]
			if assetA == assetB {
				return fmt.Errorf("assets must be different")
			}

			desiredA, err := parsePositiveInt(args[1], "desired-a")
			if err != nil {
				return err
			}
			desiredB, err := parsePositiveInt(args[3], "desired-b")
			if err != nil {
				return err
			}
			minA, err := parseNonNegativeInt(args[4], "min-a")
			if err != nil {
				return err
			}
			minB, err := parseNonNegativeInt(args[5], "min-b")
			if err != nil {
				return err
			}

			msg := types.NewMsgAddLiquidity(
				clientCtx.GetFromAddress().String(),
				assetA, assetB, desiredA, desiredB, minA, minB,
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRemoveLiquidity returns a CLI command handler for withdrawing from a pool
func CmdRemoveLiquidity() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [asset-a] [asset-b] [shares] [min-a] [min-b]",
		Short: "Burn shares against a pool and withdraw proportional reserves",
		Long: `Burn shares against the pool for the ordered pair (asset-a, asset-b).

Shares are account-wide; they can be redeemed against any pool up to that
pool's outstanding total.

Example:
  $ zephyrd tx amm remove-liquidity uatom uusdc 500000 0 0 --from mykey`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			shares, err := parsePositiveInt(args[2], "shares")
			if err != nil {
				return err
			}
			minA, err := parseNonNegativeInt(args[3], "min-a")
			if err != nil {
				return err
			}
			minB, err := parseNonNegativeInt(args[4], "min-b")
			if err != nil {
				return err
			}

			msg := types.NewMsgRemoveLiquidity(
				clientCtx.GetFromAddress().String(),
				args[0], args[1], shares, minA, minB,
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSwap returns a CLI command handler for swapping assets
func CmdSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [asset-in] [amount-in] [asset-out] [min-amount-out]",
		Short: "Swap asset-in for asset-out",
		Long: `Swap against the pool for the ordered pair (asset-in, asset-out).

A 0.30% fee is deducted from the input and retained by the pool. The
min-amount-out parameter protects against slippage; the transaction fails if
the output falls below it.

Example:
  $ zephyrd tx amm swap uatom 1000000 uusdc 3900000 --from mykey`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			assetIn, assetOut := args[0], args[2]
			if assetIn == assetOut {
				return fmt.Errorf("asset-in and asset-out must be different")
			}

			amountIn, err := parsePositiveInt(args[1], "amount-in")
			if err != nil {
				return err
			}
			minAmountOut, err := parseNonNegativeInt(args[3], "min-amount-out")
			if err != nil {
				return err
			}

			msg := types.NewMsgSwap(
				clientCtx.GetFromAddress().String(),
				assetIn, assetOut, amountIn, minAmountOut,
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdMetaSwap returns a CLI command handler for relaying a delegated swap
func CmdMetaSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta-swap [trader] [asset-in] [amount-in] [asset-out] [min-amount-out] [nonce] [signature-hex] [pubkey-hex]",
		Short: "Relay a swap the trader authorized offline",
		Long: `Relay a delegated swap. The trader signed
sha256(nonce || amount-in || min-amount-out) with their secp256k1 key; the
relayer (--from) pays fees but never holds the traded funds.

Each account can authorize exactly one delegated swap; a second meta-swap for
the same trader is rejected regardless of nonce.

Example:
  $ zephyrd tx amm meta-swap zephyr1trader... uatom 1000000 uusdc 3900000 7 1f8b...c2 02a1...9f --from relayerkey`,
		Args: cobra.ExactArgs(8),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			assetIn, assetOut := args[1], args[3]
			if assetIn == assetOut {
				return fmt.Errorf("asset-in and asset-out must be different")
			}

			amountIn, err := parsePositiveInt(args[2], "amount-in")
			if err != nil {
				return err
			}
			minAmountOut, err := parseNonNegativeInt(args[4], "min-amount-out")
			if err != nil {
				return err
			}
			nonce, err := strconv.ParseUint(args[5], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid nonce: %w", err)
			}
			signature, err := hex.DecodeString(args[6])
			if err != nil {
				return fmt.Errorf("invalid signature hex: %w", err)
			}
			pubKey, err := hex.DecodeString(args[7])
			if err != nil {
				return fmt.Errorf("invalid pubkey hex: %w", err)
			}

			msg := types.NewMsgMetaSwap(
				clientCtx.GetFromAddress().String(),
				args[0], assetIn, assetOut, amountIn, minAmountOut,
				nonce, signature, pubKey,
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
