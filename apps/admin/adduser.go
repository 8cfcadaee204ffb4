package main

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/unihive/unihive/core"
	"github.com/unihive/unihive/core/user"
)

var readPasswordFunc = term.ReadPassword // mockable

func newAddUserCmd(cli *commandLine) *cobra.Command {
	var (
		uname   string
		email   string
		isAdmin bool
	)

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user; the password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword()
			if err != nil {
				return err
			}
			return cli.addUser(uname, email, pwd, isAdmin)
		},
	}
	cmd.Flags().StringVar(&uname, "username", "", "the user's username")
	cmd.Flags().StringVar(&email, "email", "", "the user's email")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "grant all roles")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", fmt.Errorf("a password is required")
	}
	return string(pwd), nil
}

func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	now := time.Now().UTC()
	usr := user.User{
		Username:  uname,
		Email:     email,
		IsActive:  true,
		Roles:     user.StudentRoles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.usrRepo.CreateUser(ctx, usr); err != nil {
		return err
	}
	cli.logger.Printf("user %q created\n", uname)
	return nil
}
