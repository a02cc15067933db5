package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the stored preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := settingsStore.Get(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("collection:      %s\n", orUnset(settings.CollectionID))
		fmt.Printf("title property:  %s\n", settings.TitleProperty)
		fmt.Printf("url property:    %s\n", settings.URLProperty)
		fmt.Printf("auto open:       %s\n", settings.AutoOpen)
		return nil
	},
}

var (
	setCollectionID  string
	setTitleProperty string
	setURLProperty   string
	setAutoOpen      string
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := settingsStore.Get(cmd.Context())
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("collection") {
			settings.CollectionID = setCollectionID
		}
		if cmd.Flags().Changed("title-property") {
			settings.TitleProperty = setTitleProperty
		}
		if cmd.Flags().Changed("url-property") {
			settings.URLProperty = setURLProperty
		}
		if cmd.Flags().Changed("auto-open") {
			mode := model.AutoOpenMode(setAutoOpen)
			if !mode.Valid() {
				return fmt.Errorf("auto-open must be one of none, page, database")
			}
			settings.AutoOpen = mode
		}

		if err := settingsStore.Put(cmd.Context(), settings); err != nil {
			return err
		}
		fmt.Println("settings updated")
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func init() {
	settingsSetCmd.Flags().StringVar(&setCollectionID, "collection", "", "default database id for saves")
	settingsSetCmd.Flags().StringVar(&setTitleProperty, "title-property", "", "preferred title property name")
	settingsSetCmd.Flags().StringVar(&setURLProperty, "url-property", "", "preferred url property name")
	settingsSetCmd.Flags().StringVar(&setAutoOpen, "auto-open", "", "what to open after a save: none, page, or database")
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
